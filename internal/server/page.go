package server

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ytdigest</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
textarea { width: 100%; height: 8rem; }
#log { white-space: pre-wrap; font-family: monospace; }
table { border-collapse: collapse; margin-top: 1rem; }
td, th { border: 1px solid #ccc; padding: .25rem .5rem; vertical-align: top; }
</style>
</head>
<body>
<h1>ytdigest</h1>
<p>Paste YouTube links, separated by commas.</p>
<textarea id="links"></textarea>
<p>
<button id="run">Fetch data</button>
<a id="csv" href="#">Download CSV</a>
</p>
<div id="log"></div>
<table id="out"></table>
<script>
const log = document.getElementById("log");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws/reports");
ws.onmessage = (m) => {
  const e = JSON.parse(m.data);
  if (e.type === "run.progress") log.textContent = "Processed " + e.done + " of " + e.total + " videos\n";
  if (e.type === "run.notice") log.textContent += e.message + "\n";
  if (e.type === "run.finished") log.textContent += "Finished: " + e.status + "\n";
};
async function post(format) {
  const res = await fetch("/api/reports?format=" + format, {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ links: document.getElementById("links").value }),
  });
  if (!res.ok) { log.textContent = (await res.json()).error; return null; }
  return res;
}
document.getElementById("run").onclick = async () => {
  const res = await post("json");
  if (!res) return;
  const report = await res.json();
  const out = document.getElementById("out");
  out.innerHTML = "";
  for (const r of report.records) {
    const row = out.insertRow();
    for (const k of ["link", "title", "views", "likes", "dislikes", "duration_seconds", "tags"]) {
      row.insertCell().textContent = r[k];
    }
  }
};
document.getElementById("csv").onclick = async (ev) => {
  ev.preventDefault();
  const res = await post("csv");
  if (!res) return;
  const url = URL.createObjectURL(await res.blob());
  const a = document.createElement("a");
  a.href = url;
  a.download = "ytdigest.csv";
  a.click();
};
</script>
</body>
</html>
`
