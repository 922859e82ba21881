package server

import (
	"html/template"
)

// The pages are small enough to live inline; each gets its own compiled
// template so the define blocks cannot collide.
var (
	landingPage     = template.Must(template.New("landing").Parse(landingHTML))
	captureFormPage = template.Must(template.New("captureForm").Parse(captureFormHTML))
	completionPage  = template.Must(template.New("completion").Parse(completionHTML))
)

type landingData struct {
	BaseURL           string
	DirectBookmarklet template.URL
	PopupBookmarklet  template.URL
	ActiveCount       int
	ArchivedCount     int
}

type captureFormData struct {
	URL         string
	Title       string
	Tags        string
	Description string
}

// completionData drives the post-save page: it posts the one-shot signal to
// the opener, self-closes after the mode's delay and falls back to a
// manual-close message when the close is blocked.
type completionData struct {
	Success     bool
	MessageType string
	Source      string
	CloseDelay  int64 // milliseconds
	GraceDelay  int64 // milliseconds
}

const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ClipTuck</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 40rem; margin: 3rem auto; color: #222; }
a.bookmarklet { display: inline-block; padding: .5rem 1rem; margin-right: 1rem; background: #eee; border-radius: 6px; color: #222; text-decoration: none; }
code { background: #f4f4f4; padding: .1rem .3rem; }
</style>
</head>
<body>
<h1>ClipTuck</h1>
<p>{{.ActiveCount}} bookmarks, {{.ArchivedCount}} archived.</p>
<p>Drag a bookmarklet to your bookmarks bar to save pages from any tab:</p>
<p>
<a class="bookmarklet" href="{{.DirectBookmarklet}}">ClipTuck</a>
<a class="bookmarklet" href="{{.PopupBookmarklet}}">ClipTuck (popup)</a>
</p>
<p>The JSON API lives at <code>{{.BaseURL}}/api/bookmarks</code>; the full
document export at <code>{{.BaseURL}}/export</code>.</p>
</body>
</html>
`

const captureFormHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Save to ClipTuck</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 26rem; margin: 2rem auto; color: #222; }
label { display: block; margin-top: .8rem; font-size: .85rem; color: #555; }
input, textarea { width: 100%; padding: .4rem; box-sizing: border-box; }
button { margin-top: 1rem; padding: .5rem 1.5rem; }
</style>
</head>
<body>
<h2>Save to ClipTuck</h2>
<form method="post" action="/capture">
<label>URL</label>
<input name="add" value="{{.URL}}" required>
<label>Title</label>
<input name="title" value="{{.Title}}">
<label>Tags (comma-separated)</label>
<input name="tags" value="{{.Tags}}">
<label>Description</label>
<textarea name="description" rows="3">{{.Description}}</textarea>
<input type="hidden" name="popup" value="1">
<button type="submit">Save</button>
</form>
</body>
</html>
`

const completionHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ClipTuck</title>
<style>
body { font-family: -apple-system, sans-serif; text-align: center; margin-top: 4rem; color: #222; }
#fallback { display: none; color: #777; }
</style>
</head>
<body>
{{if .Success}}<h2>Saved ✓</h2>{{else}}<h2>Could not save</h2>{{end}}
<p id="fallback">You can close this tab now.</p>
<script>
(function () {
  if (window.opener && !window.opener.closed) {
    window.opener.postMessage({
      type: {{.MessageType}},
      success: {{.Success}},
      timestamp: Date.now(),
      source: {{.Source}}
    }, "*");
  }
  setTimeout(function () {
    window.close();
    setTimeout(function () {
      document.getElementById("fallback").style.display = "block";
    }, {{.GraceDelay}});
  }, {{.CloseDelay}});
})();
</script>
</body>
</html>
`
