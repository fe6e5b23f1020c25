// Package server exposes the fitted model through a small gin dashboard:
// an HTML form on / and a JSON prediction endpoint on /predict.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UZRashid/MLG382-Project2/ensemble"
	"github.com/UZRashid/MLG382-Project2/internal/dataset"
	"github.com/UZRashid/MLG382-Project2/pkg/errors"
	"github.com/UZRashid/MLG382-Project2/pkg/log"
)

const shutdownGrace = 5 * time.Second

// Server serves predictions from one fitted forest. The model is treated
// as immutable after construction, so handlers read it without locking.
type Server struct {
	forest *ensemble.RandomForestRegressor
	engine *gin.Engine
	logger log.Logger
}

// New builds a server around a fitted forest. The forest's stored feature
// schema must match the dataset schema, otherwise serving would feed the
// model differently laid out rows than it was trained on.
func New(forest *ensemble.RandomForestRegressor) (*Server, error) {
	if forest == nil || !forest.IsFitted() {
		return nil, errors.Wrap(errors.ErrModelNotLoaded, "server: new")
	}
	if err := checkSchema(forest); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		forest: forest,
		engine: gin.New(),
		logger: log.GetLoggerWithName("server"),
	}

	s.engine.Use(gin.Recovery(), requestLogger(s.logger))
	s.engine.GET("/", s.index)
	s.engine.POST("/predict", s.predict)
	s.engine.GET("/healthz", s.healthz)
	return s, nil
}

func checkSchema(forest *ensemble.RandomForestRegressor) error {
	want := dataset.FeatureColumns()
	got := forest.FeatureNames
	if len(got) != len(want) {
		return errors.NewSchemaError("server.New", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			return errors.NewSchemaError("server.New", want, got)
		}
	}
	return nil
}

// Handler returns the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server: listen")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server: shutdown")
	}
	return nil
}
