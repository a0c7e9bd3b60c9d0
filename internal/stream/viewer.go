package stream

// viewerPage shows the stream letterboxed in the browser window; the mouse
// wheel zooms the canvas.
const viewerPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>spheretracer</title>
<style>
html, body { margin: 0; height: 100%; background: #000; }
img { width: 100vw; height: 100vh; object-fit: contain; image-rendering: pixelated; }
</style>
</head>
<body>
<img id="frame" alt="">
<script>
const img = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
let url = null;
ws.onmessage = (ev) => {
  if (url) URL.revokeObjectURL(url);
  url = URL.createObjectURL(ev.data);
  img.src = url;
};
window.addEventListener("wheel", (ev) => {
  const delta = ev.deltaY < 0 ? 1 : -1;
  if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify({type: "zoom", delta: delta}));
});
</script>
</body>
</html>
`
