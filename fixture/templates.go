package fixture

import "html/template"

var (
	loginTemplate     = template.Must(template.New("login").Parse(loginPage))
	dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardPage))
)

type loginData struct {
	Error string
}

type dashboardData struct {
	Email string
}

const loginPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Yarrow · Sign in</title>
<style>
body { font-family: system-ui, sans-serif; background: #f6f5f2; margin: 0; }
main { max-width: 360px; margin: 10vh auto; background: #fff; padding: 32px; border-radius: 8px; box-shadow: 0 1px 4px rgba(0,0,0,.1); }
h1 { margin-top: 0; font-size: 1.4rem; }
label { display: block; margin: 12px 0 4px; font-weight: 600; }
input { width: 100%; box-sizing: border-box; padding: 8px; border: 1px solid #ccc; border-radius: 4px; }
button { margin-top: 16px; width: 100%; padding: 10px; border: 0; border-radius: 4px; background: #4a6b4f; color: #fff; font-size: 1rem; cursor: pointer; }
.error { color: #a33; background: #fbeaea; padding: 8px; border-radius: 4px; }
</style>
</head>
<body>
<main>
<h1>Yarrow</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
<label for="email">Email</label>
<input id="email" name="email" type="email" autocomplete="email" required>
<label for="password">Password</label>
<input id="password" name="password" type="password" autocomplete="current-password" required>
<button type="submit">Login</button>
</form>
</main>
</body>
</html>
`

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Yarrow · Dashboard</title>
<style>
body { font-family: system-ui, sans-serif; background: #f6f5f2; margin: 0; }
main { max-width: 720px; margin: 40px auto; padding: 0 16px; }
h1 { font-size: 1.6rem; }
.signed-in { color: #666; }
.card { background: #fff; border: 1px solid #e3e1dc; border-radius: 8px; padding: 16px 20px; margin-bottom: 12px; box-shadow: 0 1px 3px rgba(0,0,0,.06); }
.card h2 { margin: 0 0 4px; font-size: 1.1rem; }
.card p { margin: 0; color: #666; }
</style>
</head>
<body>
<main>
<h1>Galleries</h1>
<p class="signed-in">Signed in as {{.Email}}</p>
<form method="post" action="/logout"><button type="submit">Log out</button></form>
<section id="galleries"></section>
<script>
fetch('/api/galleries')
  .then(function (res) { return res.json(); })
  .then(function (galleries) {
    var container = document.getElementById('galleries');
    galleries.forEach(function (gallery) {
      var card = document.createElement('div');
      card.className = 'card';
      var title = document.createElement('h2');
      title.textContent = gallery.name;
      var count = document.createElement('p');
      count.textContent = gallery.photo_count + ' photos';
      card.appendChild(title);
      card.appendChild(count);
      container.appendChild(card);
    });
  });
</script>
</main>
</body>
</html>
`
