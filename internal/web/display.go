package web

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Display renders the big-screen shell. The shell never changes after load;
// screens are mounted into #screenRoot and containers are filled over the
// display websocket.
func Display(info RoomInfo) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := info.Title
		if title == "" {
			title = "Квиз"
		}
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="ru">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+html.EscapeString(title)+`</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="topbar">
        <div class="room">
          <h1>`+html.EscapeString(title)+`</h1>
          <span class="room-code">`+html.EscapeString(info.RoomID)+`</span>
        </div>
        <div class="join">
          <a class="join-link" href="`+html.EscapeString(info.JoinURL)+`">`+html.EscapeString(info.JoinURL)+`</a>`)
		if info.QRURL != "" {
			_, _ = io.WriteString(w, `
          <img class="join-qr" src="`+html.EscapeString(info.QRURL)+`" alt="QR для входа"/>`)
		}
		_, _ = io.WriteString(w, `
        </div>
        <div id="countdown" class="countdown hidden">00:00</div>
      </header>

      <div id="banner" class="banner hidden"></div>

      <section id="autostartPanel" class="autostart hidden">
        <span id="autostartMessage" class="autostart-message"></span>
        <span id="autostartCountdown" class="autostart-countdown"></span>
        <button id="cancelAutoStart" class="secondary">Отменить автозапуск</button>
      </section>

      <section id="screenRoot" class="screen"></section>

      <footer class="controls">
        <button id="startGame" class="primary">Начать игру</button>
      </footer>
    </main>

    <script>
      const root = document.getElementById("screenRoot");
      const countdown = document.getElementById("countdown");
      const banner = document.getElementById("banner");
      const panel = document.getElementById("autostartPanel");
      const panelMessage = document.getElementById("autostartMessage");
      const panelCountdown = document.getElementById("autostartCountdown");
      const cancelBtn = document.getElementById("cancelAutoStart");
      const startBtn = document.getElementById("startGame");

      const scheme = location.protocol === "https:" ? "wss" : "ws";
      const ws = new WebSocket(scheme + "://" + location.host + "/ws");

      function send(action) {
        if (ws.readyState === WebSocket.OPEN) {
          ws.send(JSON.stringify({ action }));
        }
      }

      startBtn.addEventListener("click", () => send("start_game"));
      cancelBtn.addEventListener("click", () => send("cancel_auto_start"));

      function swapScreen(msg) {
        const mount = () => {
          root.innerHTML = msg.html;
          root.dataset.screen = msg.screen;
          root.classList.remove("leaving");
          root.classList.add("entering");
          setTimeout(() => root.classList.remove("entering"), 400);
          send("swap_done");
        };
        if (!root.dataset.screen) {
          mount();
          return;
        }
        let done = false;
        const finish = () => {
          if (done) return;
          done = true;
          root.removeEventListener("animationend", finish);
          mount();
        };
        root.addEventListener("animationend", finish);
        root.classList.add("leaving");
        setTimeout(finish, 400);
      }

      function applyHTML(msg) {
        const target = document.querySelector(msg.selector);
        if (!target) return;
        if (msg.mode === "outer") {
          target.outerHTML = msg.html;
        } else {
          target.innerHTML = msg.html;
        }
      }

      function applyCountdown(msg) {
        countdown.textContent = msg.countdown || msg.text || "00:00";
        countdown.classList.toggle("warning", !!msg.warning);
        countdown.classList.toggle("hidden", !msg.visible);
      }

      function applyAutoStart(msg) {
        if (msg.state === "tick") {
          panelCountdown.textContent = msg.visible ? msg.countdown : "";
          return;
        }
        panel.classList.toggle("hidden", !msg.visible);
        panel.dataset.state = msg.state;
        panelMessage.textContent = msg.text || "";
        panelCountdown.textContent = msg.countdown || "";
        cancelBtn.disabled = !msg.enabled;
        cancelBtn.classList.toggle("hidden", !msg.enabled);
      }

      function applyBanner(msg) {
        banner.textContent = msg.text || "";
        banner.classList.toggle("hidden", !msg.text);
      }

      ws.addEventListener("message", (event) => {
        let msg;
        try {
          msg = JSON.parse(event.data);
        } catch {
          return;
        }
        switch (msg.type) {
          case "screen":
            swapScreen(msg);
            break;
          case "html":
            applyHTML(msg);
            break;
          case "countdown":
            applyCountdown(msg);
            break;
          case "auto_start":
            applyAutoStart(msg);
            break;
          case "banner":
            applyBanner(msg);
            break;
          case "controls":
            if (msg.control === "cancel") {
              cancelBtn.disabled = !msg.enabled;
            } else {
              startBtn.disabled = !msg.enabled;
            }
            break;
        }
      });

      ws.addEventListener("close", () => {
        banner.textContent = "Экран отключён. Обновите страницу.";
        banner.classList.remove("hidden");
        startBtn.disabled = true;
        cancelBtn.disabled = true;
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}
