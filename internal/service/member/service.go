// Package member is the HTTP client for the membership service.
package member

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
	cfg    config.MemberHTTPServer
	cb     circuit_breaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.Config) *Service {
	return &Service{
		log:    log.Named("member-client"),
		client: &http.Client{Timeout: 5 * time.Second},
		cfg:    cfg.MemberHTTPServer,
		cb:     circuit_breaker.NewCircuitBreaker(10, 10*time.Second, 0.5, 3),
	}
}

// IsValidMember reports whether the member exists and is in good standing.
// An unknown or blocked member is a firm "no"; transport trouble (including
// an open breaker) comes back as ErrStoreUnavailable so callers answer 503
// instead of wrongly denying membership.
func (s *Service) IsValidMember(ctx context.Context, memberID string) (bool, error) {
	var (
		m        model.Member
		notFound bool
	)
	if err := s.cb.Call(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("http://%s/api/v1/members/%s", net.JoinHostPort(s.cfg.Host, s.cfg.Port), memberID), http.NoBody)
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
			return errors.Errorf("member service: %s", resp.Status)
		}
		return json.NewDecoder(resp.Body).Decode(&m)
	}); err != nil {
		s.log.Warn("member lookup failed", zap.String("memberId", memberID), zap.Error(err))
		return false, errors.WithMessage(errs.ErrStoreUnavailable, err.Error())
	}

	if notFound {
		return false, nil
	}
	return m.Status == model.MemberStatusActive, nil
}
