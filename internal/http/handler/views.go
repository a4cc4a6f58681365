package handler

import "html/template"

// Templates for the two pages this gateway renders itself. Everything past
// the reset flow lives in the main web frontend.
var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "confirm_reset"}}<!DOCTYPE html>
<html>
<head><title>Pick a new password</title></head>
<body>
<h1>Pick a new password</h1>
<p>Please choose a new password to finish resetting your account.</p>
<form method="POST" action="/reset/{{.Token}}">
  <input type="password" name="password" minlength="8" required autofocus>
  <button type="submit">Save password</button>
</form>
</body>
</html>{{end}}

{{define "request_reset"}}<!DOCTYPE html>
<html>
<head><title>Reset your password</title></head>
<body>
<h1>Reset your password</h1>
<p>Enter your email address and we will send you a reset link.</p>
<form method="POST" action="/password-reset">
  <input type="email" name="email" required autofocus>
  <button type="submit">Send reset link</button>
</form>
</body>
</html>{{end}}

{{define "reset_sent"}}<!DOCTYPE html>
<html>
<head><title>Check your email</title></head>
<body>
<h1>Check your email</h1>
<p>If an account exists for that address, a reset link is on its way.</p>
</body>
</html>{{end}}

{{define "error"}}<!DOCTYPE html>
<html>
<head><title>Something went wrong</title></head>
<body>
<h1>Something went wrong</h1>
<p>We could not finish resetting your password. Please try again.</p>
</body>
</html>{{end}}
`))

// PageTemplates exposes the parsed templates for router installation.
func PageTemplates() *template.Template {
	return pageTemplates
}
