// Package debugsrv serves metrics, layer status and the latest frame over
// HTTP for local inspection.
package debugsrv

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"globe/earth/geodata"
)

// Snapshot is the state the loop publishes for the server. It is the only
// value shared between the loop and HTTP goroutines.
type Snapshot struct {
	mu     sync.Mutex
	frame  *image.RGBA
	layers []geodata.LayerStatus
	ticks  uint64
	at     time.Time
}

// Publish stores a copy of frame and the layer status.
func (s *Snapshot) Publish(frame *image.RGBA, layers []geodata.LayerStatus, ticks uint64) {
	var cp *image.RGBA
	if frame != nil {
		cp = &image.RGBA{
			Pix:    append([]byte(nil), frame.Pix...),
			Stride: frame.Stride,
			Rect:   frame.Rect,
		}
	}
	ls := append([]geodata.LayerStatus(nil), layers...)

	s.mu.Lock()
	s.frame = cp
	s.layers = ls
	s.ticks = ticks
	s.at = time.Now()
	s.mu.Unlock()
}

func (s *Snapshot) read() (*image.RGBA, []geodata.LayerStatus, uint64, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame, s.layers, s.ticks, s.at
}

// NewRouter builds the debug routes. metrics may be nil.
func NewRouter(snap *Snapshot, metrics http.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		_, _, ticks, at := snap.read()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ticks": ticks, "published": at})
	})

	router.GET("/layers", func(c *gin.Context) {
		_, layers, _, _ := snap.read()
		if layers == nil {
			layers = []geodata.LayerStatus{}
		}
		c.JSON(http.StatusOK, layers)
	})

	router.GET("/frame.png", func(c *gin.Context) {
		frame, _, _, _ := snap.read()
		if frame == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no frame published yet"})
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, frame); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	})

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}
	return router
}

// Run serves handler on addr until ctx is cancelled, then shuts down.
func Run(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("debug_server_listen", "addr", addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("debug_server_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
