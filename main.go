package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Porthole/internal/calc/porthole"
	batch "Porthole/internal/calc/premium/batch"
	importer "Porthole/internal/calc/premium/importer"
	report "Porthole/internal/calc/report"
	config "Porthole/internal/config"
	live "Porthole/internal/live"
	middleware "Porthole/internal/middleware"
	present "Porthole/internal/present"

	"github.com/gorilla/mux"
)

var wg sync.WaitGroup

func HandleList(r *mux.Router, cfg config.Config) {
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)

	api := r.PathPrefix("/api").Subrouter()

	// The live channel holds one connection per browser tab and is not
	// subject to the per-request budget.
	api.Handle("/tools/porthole/live", live.NewHandler()).Methods("GET")

	tools := api.PathPrefix("/tools/porthole").Subrouter()
	tools.Use(limiter.LimitMiddleware)

	portholeH := &porthole.Handler{}
	reportH := &report.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}

	tools.HandleFunc("/calc", portholeH.Calc).Methods("POST")
	tools.HandleFunc("/defaults", portholeH.Defaults).Methods("GET")
	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
	tools.HandleFunc("/batch", batchH.Calc).Methods("POST")
	tools.HandleFunc("/import", importH.Import).Methods("POST")
	tools.HandleFunc("/export", importH.Export).Methods("POST")
	tools.HandleFunc("/diagram", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		w.Write([]byte(present.Diagram()))
	}).Methods("GET")

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
}

func NewServer(cfg config.Config) *http.Server {
	r := mux.NewRouter()
	HandleList(r, cfg)
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           middleware.Logging(middleware.CORS(r)),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	server := NewServer(cfg)
	log.Printf("Starting server on %s", cfg.Addr)

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
