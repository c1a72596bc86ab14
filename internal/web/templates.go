package web

import "html/template"

// pageTemplate は入力フォームと結果表示を1ページで描画します。
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Extractor de 'DatePublished' y 'DateModified' JSON-LD</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 260px; padding: 1rem; background: #f0f2f6; min-height: 100vh; }
main { flex: 1; padding: 1rem 2rem; }
textarea { width: 100%; height: 10rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ddd; padding: 4px 8px; text-align: left; }
.diagnostic { color: #b00020; margin: 2px 0; }
.counts { display: flex; gap: 2rem; }
iframe { border: 0; width: 100%; height: 420px; }
</style>
</head>
<body>
<aside>
<h3>Descripción</h3>
<p>Esta herramienta permite extraer las fechas de <strong>publicación</strong> y <strong>modificación</strong> de URLs que contienen datos estructurados en formato JSON-LD.</p>
</aside>
<main>
<h1>🤖 Extractor de 'DatePublished' y 'DateModified' JSON-LD</h1>
<form method="post" action="/process">
<label for="urls">Ingresa las URLs (una por línea)</label>
<textarea id="urls" name="urls">{{.Input}}</textarea>
<button type="submit">Procesar URLs</button>
</form>
{{- if .Message}}
<p class="message">{{.Message}}</p>
{{- end}}
{{- range .Diagnostics}}
<p class="diagnostic">{{.}}</p>
{{- end}}
{{- if .Records}}
<h2>Resultados:</h2>
<table id="results">
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Records}}
<tr><td>{{.URL}}</td><td>{{.Published}}</td><td>{{.Modified}}</td></tr>
{{- end}}
</tbody>
</table>
<form method="post" action="/download">
<input type="hidden" name="csv" value="{{.CSV}}">
<button type="submit">Descargar CSV</button>
</form>
<h2>Número de artículos publicados y modificados por año</h2>
<div class="counts">
<table id="published-by-year">
<thead><tr><th>Año de Publicación</th><th>Número de Artículos</th></tr></thead>
<tbody>{{range .PublishedByYear}}<tr><td>{{.Year}}</td><td>{{.Count}}</td></tr>{{end}}</tbody>
</table>
<table id="modified-by-year">
<thead><tr><th>Año de Modificación</th><th>Número de Artículos Modificados</th></tr></thead>
<tbody>{{range .ModifiedByYear}}<tr><td>{{.Year}}</td><td>{{.Count}}</td></tr>{{end}}</tbody>
</table>
</div>
<iframe id="charts" title="charts" srcdoc="{{.Charts}}"></iframe>
{{- end}}
</main>
</body>
</html>
`))
