package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"stock-backtest/config"
	"stock-backtest/internal/dto"
	"stock-backtest/internal/ledger"
	"stock-backtest/internal/repository"
	"stock-backtest/pkg/cache"
	"stock-backtest/pkg/logger"
	"stock-backtest/pkg/utils"
)

type PortfolioService interface {
	Create(ctx context.Context, req dto.CreatePortfolioRequest) (*dto.CreatePortfolioResponse, error)
	Buy(ctx context.Context, id string, req dto.TradeOrderRequest) (*dto.PortfolioSummary, error)
	Sell(ctx context.Context, id string, req dto.TradeOrderRequest) (*dto.PortfolioSummary, error)
	Summary(ctx context.Context, id string) (*dto.PortfolioSummary, error)
	Transactions(ctx context.Context, id string) ([]ledger.Transaction, error)
}

// portfolioSession serializes trades against one ledger. Ledgers are not
// safe for concurrent use on their own.
type portfolioSession struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
}

type portfolioService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketData repository.MarketDataRepository
	sessions   cache.Cache
}

// NewPortfolioService keeps portfolio sessions in an expiring store owned by
// the service. There is no process-wide registry; sessions die with their TTL.
func NewPortfolioService(cfg *config.Config, log *logger.Logger, marketData repository.MarketDataRepository, sessions cache.Cache) PortfolioService {
	return &portfolioService{
		cfg:        cfg,
		log:        log,
		marketData: marketData,
		sessions:   sessions,
	}
}

func (s *portfolioService) Create(ctx context.Context, req dto.CreatePortfolioRequest) (*dto.CreatePortfolioResponse, error) {
	initialCash := req.InitialCash
	if initialCash == 0 {
		initialCash = s.cfg.Backtest.InitialCash
	}
	if initialCash < 0 {
		return nil, dto.NewInputError("initial cash must be positive, got %g", initialCash)
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	s.sessions.Set(id, &portfolioSession{ledger: ledger.New(initialCash)}, s.cfg.Session.TTL)

	s.log.InfoContext(ctx, "portfolio session created",
		logger.StringField("portfolio_id", id),
		logger.Float64Field("initial_cash", initialCash))

	return &dto.CreatePortfolioResponse{PortfolioID: id, InitialCash: initialCash}, nil
}

func (s *portfolioService) Buy(ctx context.Context, id string, req dto.TradeOrderRequest) (*dto.PortfolioSummary, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	date, err := tradeDate(req.Date)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	ok := session.ledger.Buy(req.Symbol, req.Quantity, req.Price, date)
	available := session.ledger.Cash()
	session.mu.Unlock()
	if !ok {
		return nil, dto.NewStateError("insufficient cash for %s: need %.2f, have %.2f",
			req.Symbol, req.Quantity*req.Price, available)
	}

	return s.summarize(ctx, session)
}

func (s *portfolioService) Sell(ctx context.Context, id string, req dto.TradeOrderRequest) (*dto.PortfolioSummary, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	date, err := tradeDate(req.Date)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	ok := session.ledger.Sell(req.Symbol, req.Quantity, req.Price, date)
	session.mu.Unlock()
	if !ok {
		return nil, dto.NewStateError("insufficient holdings of %s to sell %g",
			req.Symbol, req.Quantity)
	}

	return s.summarize(ctx, session)
}

func (s *portfolioService) Summary(ctx context.Context, id string) (*dto.PortfolioSummary, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, session)
}

func (s *portfolioService) Transactions(_ context.Context, id string) ([]ledger.Transaction, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.ledger.Transactions(), nil
}

func (s *portfolioService) summarize(ctx context.Context, session *portfolioSession) (*dto.PortfolioSummary, error) {
	session.mu.Lock()
	symbols := session.ledger.Symbols()
	session.mu.Unlock()

	prices := map[string]float64{}
	if len(symbols) > 0 {
		fetched, err := s.marketData.GetCurrentPrices(ctx, symbols)
		if err != nil {
			return nil, err
		}
		prices = fetched
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	summary := session.ledger.Summary(prices)
	return &summary, nil
}

// session looks a session up and slides its expiration forward.
func (s *portfolioService) session(id string) (*portfolioSession, error) {
	session, found := cache.GetTyped[*portfolioSession](s.sessions, id)
	if !found {
		return nil, dto.NewDataError("portfolio %s not found or expired", id)
	}
	s.sessions.Set(id, session, s.cfg.Session.TTL)
	return session, nil
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", dto.NewExternalError("failed to generate portfolio id", err)
	}
	return hex.EncodeToString(buf), nil
}

func tradeDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	date, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, dto.NewInputError("%s", err.Error())
	}
	return date, nil
}
