package handler

import "fmt"

// Activation pages are rendered as plain HTML because the link is opened from
// an email client, not from the single-page app.

func activationSuccessPage(name, email string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Account activated</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 40px auto; padding: 20px;">
  <h1 style="color: #2e7d32;">Account activated</h1>
  <p>The account for <strong>%s</strong> (%s) is now active.</p>
  <p>The user can sign in to the Asksource Admin Dashboard.</p>
</body>
</html>`, name, email)
}

const activationErrorPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Activation failed</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 40px auto; padding: 20px;">
  <h1 style="color: #c62828;">Activation failed</h1>
  <p>This activation link is invalid, has expired, or was already used.</p>
  <p>Ask the user to register again to receive a fresh link.</p>
</body>
</html>`
