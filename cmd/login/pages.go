package login

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>3F</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: #f5f3ff; color: #2e1065; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; }
main { background: #fff; border-radius: 12px; padding: 2rem 3rem; box-shadow: 0 4px 24px rgba(100, 79, 193, 0.15); text-align: center; }
h1 { color: #644fc1; font-size: 1.5rem; }
</style>
</head>
<body>
<main>
<h1>%s</h1>
<p>%s</p>
</main>
</body>
</html>
`

var (
	successPage = page{title: "You are signed in", body: "You can close this tab and return to your terminal."}
	errorPage   = page{title: "Sign in failed", body: "Something went wrong. Return to your terminal and run threef login again."}
)

type page struct {
	title string
	body  string
}
