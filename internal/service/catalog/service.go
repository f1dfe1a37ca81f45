// Package catalog is the HTTP client for the catalog service, the system of
// record for book metadata.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libtrack/borrowing-service/config"
	"github.com/libtrack/borrowing-service/internal/errs"
	"github.com/libtrack/borrowing-service/internal/model"
	"github.com/libtrack/borrowing-service/pkg/circuit_breaker"
)

type Service struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.CatalogHTTPServer
	cb     circuit_breaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.Config) *Service {
	return &Service{
		log:    log.Named("catalog-client"),
		client: &http.Client{Timeout: 5 * time.Second},
		cfg:    cfg.CatalogHTTPServer,
		cb:     circuit_breaker.NewCircuitBreaker(10, 10*time.Second, 0.5, 3),
	}
}

// GetBook fetches book metadata. A missing book maps to ErrBookNotFound; a
// 404 is a valid catalog answer and does not count against the breaker.
func (s *Service) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	var (
		book     model.Book
		notFound bool
	)
	if err := s.cb.Call(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("http://%s/api/v1/books/%s", net.JoinHostPort(s.cfg.Host, s.cfg.Port), bookUid), http.NoBody)
		if err != nil {
			return err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			notFound = true
			return nil
		}
		if resp.StatusCode >= 400 {
			return errors.Errorf("catalog service: %s", resp.Status)
		}
		return json.NewDecoder(resp.Body).Decode(&book)
	}); err != nil {
		s.log.Warn("book lookup failed", zap.String("bookUid", bookUid), zap.Error(err))
		return model.Book{}, errors.WithMessage(errs.ErrStoreUnavailable, err.Error())
	}

	if notFound {
		return model.Book{}, errs.ErrBookNotFound
	}
	return book, nil
}
