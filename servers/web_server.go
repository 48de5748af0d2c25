// servers/web_server.go
package servers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"otpbot/interfaces"
)

// GatewayStatus reports whether the Discord gateway connection is up.
type GatewayStatus func() bool

// WebServer はヘルスチェックと利用統計の HTTP エンドポイントを提供します。
type WebServer struct {
	log     interfaces.Logger
	db      interfaces.UsageStore
	gateway GatewayStatus
	router  *mux.Router
	http    *http.Server
}

// NewWebServer は新しいWebServerインスタンスを作成します。
func NewWebServer(addr string, log interfaces.Logger, db interfaces.UsageStore, gateway GatewayStatus) *WebServer {
	s := &WebServer{
		log:     log,
		db:      db,
		gateway: gateway,
		router:  mux.NewRouter(),
	}

	// ルーティングを設定
	s.router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/api/usage", s.usage).Methods(http.MethodGet)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *WebServer) Name() string { return "web" }

// Handler exposes the router for tests.
func (s *WebServer) Handler() http.Handler { return s.router }

// Start はリッスンを開始し、バックグラウンドでリクエストを処理します。
func (s *WebServer) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.http.Addr)
	}
	s.log.Info("Webサーバーを起動します", "addr", ln.Addr().String())
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Webサーバーが異常終了しました", "error", err)
		}
	}()
	return nil
}

// Stop はWebサーバーをシャットダウンします。
func (s *WebServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Gateway  string `json:"gateway"`
}

func (s *WebServer) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "ok", Gateway: "connected"}
	code := http.StatusOK

	if err := s.db.PingDB(); err != nil {
		s.log.Warn("Health check database ping failed", "error", err)
		resp.Status, resp.Database = "degraded", "error"
		code = http.StatusServiceUnavailable
	}
	if s.gateway != nil && !s.gateway() {
		resp.Status, resp.Gateway = "degraded", "disconnected"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func (s *WebServer) usage(w http.ResponseWriter, r *http.Request) {
	usage, err := s.db.GetCommandUsage()
	if err != nil {
		s.log.Error("Failed to read command usage", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "usage unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
