package site

// pageTemplate renders a single document with its badge after the content.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/assets/site.css">
  <link rel="stylesheet" href="/assets/frontend.css">
</head>
<body>
  <main class="content">
    <article class="page-content" data-document="{{.ID}}">
      <h1>{{.Title}}</h1>
      {{.Content}}
      {{.Badge}}
    </article>
  </main>
  <script src="/assets/frontend.js"></script>
</body>
</html>`

// cssContent styles the document page around the badge.
const cssContent = `:root {
  --bg: #ffffff;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --link: #228be6;
  --content-max-width: 760px;
}

* { box-sizing: border-box; }

body {
  background: var(--bg);
  color: var(--text);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  line-height: 1.6;
  margin: 0;
}

.content {
  margin: 0 auto;
  max-width: var(--content-max-width);
  padding: 2rem 1.5rem;
}

.page-content a { color: var(--link); }

.page-content h1 {
  border-bottom: 1px solid var(--border);
  padding-bottom: 0.5rem;
}
`
