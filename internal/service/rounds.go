package service

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"time"    // Timestamps and cache TTLs

	"tetconnect/internal/domain"  // Importing domain models
	"tetconnect/internal/game"    // Round rules, dice and payouts
	"tetconnect/internal/metrics" // Prometheus collectors
	"tetconnect/internal/utils"   // Cache helpers

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

const (
	roundCacheTTL = 30 * time.Second
	// startAttempts bounds the re-reads after losing a round-number race.
	startAttempts = 3
)

// RoundOptions tunes a RoundService
type RoundOptions struct {
	Roller game.Roller      // Dice source; CryptoRoller when nil
	MaxBet int64            // Largest single stake
	Now    func() time.Time // Clock; time.Now when nil
}

// RoundService is the entry point for everything a player does with a
// family's Bàu Cua table. Each call authorizes the caller against the family
// and then drives the round state machine; nothing is kept in memory between
// calls, all coordination happens in the database.
type RoundService struct {
	db      *gorm.DB
	rdb     *redis.Client
	members MembershipChecker
	ledger  *Ledger
	roller  game.Roller
	maxBet  int64
	now     func() time.Time
}

// NewRoundService wires a RoundService; rdb may be nil
func NewRoundService(db *gorm.DB, rdb *redis.Client, members MembershipChecker, ledger *Ledger, opts RoundOptions) *RoundService {
	s := &RoundService{
		db:      db,
		rdb:     rdb,
		members: members,
		ledger:  ledger,
		roller:  opts.Roller,
		maxBet:  opts.MaxBet,
		now:     opts.Now,
	}
	if s.roller == nil {
		s.roller = game.CryptoRoller{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// authorize checks that familyID is set and userID belongs to it
func (s *RoundService) authorize(ctx context.Context, familyID, userID uint) error {
	if familyID == 0 {
		return ErrMissingFamily
	}
	ok, err := s.members.IsMember(ctx, familyID, userID)
	if err != nil {
		return unexpected("check membership", err)
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}

// RequestStart returns the family's open round, creating the next one when
// the previous round is settled or none exists. It fails with ErrRoundRolling
// while a roll is in flight. Resuming has no side effects; creating writes a
// single row.
func (s *RoundService) RequestStart(ctx context.Context, familyID, userID uint) (domain.Round, error) {
	if err := s.authorize(ctx, familyID, userID); err != nil {
		metrics.RecordRoundStart(startOutcome(err))
		return domain.Round{}, err
	}
	for attempt := 0; attempt < startAttempts; attempt++ {
		latest, err := s.latest(ctx, s.db, familyID)
		if err != nil {
			metrics.RecordRoundStart("error")
			return domain.Round{}, unexpected("load latest round", err)
		}
		decision := game.DecideStart(latest)
		switch decision.Action {
		case game.ActionResume:
			metrics.RecordRoundStart("resumed")
			return *latest, nil
		case game.ActionReject:
			metrics.RecordRoundStart("conflict")
			return domain.Round{}, ErrRoundRolling
		}

		round, err := domain.NewRound(familyID, decision.Next, s.now())
		if err != nil {
			metrics.RecordRoundStart("error")
			return domain.Round{}, unexpected("build round", err)
		}
		err = s.db.WithContext(ctx).Create(&round).Error
		if err == nil {
			s.invalidateRounds(ctx, familyID)
			metrics.RecordRoundStart("created")
			logrus.WithFields(logrus.Fields{
				"family_id":    familyID,
				"user_id":      userID,
				"round_id":     round.ID,
				"round_number": round.RoundNumber,
			}).Info("Round started")
			return round, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.RecordRoundStart("error")
			return domain.Round{}, unexpected("create round", err)
		}
		// Another request created this number first; decide again from its round.
		logrus.WithFields(logrus.Fields{
			"family_id":    familyID,
			"round_number": round.RoundNumber,
		}).Debug("Round number taken, re-reading latest round")
	}
	metrics.RecordRoundStart("error")
	return domain.Round{}, unexpected("create round", errors.New("round number kept colliding"))
}

// BetInput describes a wager
type BetInput struct {
	RoundID string
	UserID  uint
	Symbol  string
	Amount  int64
}

// BetResult is a placed bet and the wallet after the debit
type BetResult struct {
	Bet    domain.Bet    `json:"bet"`
	Wallet domain.Wallet `json:"wallet"`
}

// PlaceBet debits the stake and records the bet while the round is betting.
// The round's betting status is re-asserted inside the transaction, so a bet
// either lands before the roll or is refused.
func (s *RoundService) PlaceBet(ctx context.Context, in BetInput) (BetResult, error) {
	start := time.Now()
	result := "fail"
	symbol, symErr := game.ParseSymbol(in.Symbol)
	defer func() { metrics.RecordBet(result, symbol, start) }()

	if symErr != nil {
		return BetResult{}, ErrUnknownSymbol
	}
	if in.Amount <= 0 || in.Amount > game.MaxStake || (s.maxBet > 0 && in.Amount > s.maxBet) {
		return BetResult{}, ErrInvalidAmount
	}
	round, err := s.findRound(ctx, in.RoundID)
	if err != nil {
		return BetResult{}, err
	}
	if err := s.authorize(ctx, round.FamilyID, in.UserID); err != nil {
		return BetResult{}, err
	}
	if round.Status != domain.RoundBetting {
		return BetResult{}, ErrRoundClosed
	}
	bet, err := domain.NewBet(round, in.UserID, symbol, in.Amount)
	if err != nil {
		return BetResult{}, &Error{Kind: KindBadRequest, Msg: "invalid bet", Err: err}
	}

	var wallet domain.Wallet
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Round{}).
			Where("id = ? AND status = ?", round.ID, domain.RoundBetting).
			Updates(map[string]any{
				"bet_count": gorm.Expr("bet_count + 1"),
				"bet_total": gorm.Expr("bet_total + ?", in.Amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoundClosed // Rolled since we read it
		}
		ledger := s.ledger.WithTx(tx)
		if _, err := ledger.GetOrCreate(ctx, round.FamilyID, in.UserID); err != nil {
			return err
		}
		w, err := ledger.Debit(ctx, round.FamilyID, in.UserID, in.Amount, round.ID)
		if err != nil {
			return err
		}
		bet.CreatedAt = s.now()
		if err := tx.Create(&bet).Error; err != nil {
			return err
		}
		wallet = w
		return nil
	})
	if err != nil {
		return BetResult{}, classify("place bet", err)
	}
	s.ledger.Invalidate(ctx, round.FamilyID, in.UserID)
	s.invalidateRounds(ctx, round.FamilyID)
	result = "success"
	logrus.WithFields(logrus.Fields{
		"family_id": round.FamilyID,
		"round_id":  round.ID,
		"user_id":   in.UserID,
		"symbol":    symbol,
		"amount":    in.Amount,
		"balance":   wallet.Balance,
	}).Info("Bet placed")
	return BetResult{Bet: bet, Wallet: wallet}, nil
}

// RoundView is a round with its dice and bets
type RoundView struct {
	domain.Round
	Dice []string     `json:"dice,omitempty"` // Rolled faces
	Bets []domain.Bet `json:"bets"`           // Bets in placement order
}

// Roll closes betting, fixes the dice and settles the round. The dice are
// stored with the betting -> rolling transition; settlement then applies
// every payout and the rolling -> settled transition in one transaction.
// Calling Roll on a round left rolling by a failed settlement finishes it
// with the stored dice.
func (s *RoundService) Roll(ctx context.Context, roundID string, userID uint) (RoundView, error) {
	round, err := s.findRound(ctx, roundID)
	if err != nil {
		return RoundView{}, err
	}
	if err := s.authorize(ctx, round.FamilyID, userID); err != nil {
		return RoundView{}, err
	}
	if round.Status == domain.RoundBetting {
		round, err = s.beginRoll(ctx, round, userID)
		if err != nil {
			return RoundView{}, err
		}
	}
	if round.Status != domain.RoundRolling {
		return RoundView{}, ErrRoundSettled
	}
	return s.settle(ctx, round)
}

// beginRoll moves betting -> rolling with freshly rolled dice. If another
// caller got there first the current row is returned instead.
func (s *RoundService) beginRoll(ctx context.Context, round domain.Round, userID uint) (domain.Round, error) {
	next, err := game.NextStatus(round.Status, game.EvtRoll)
	if err != nil {
		return domain.Round{}, &Error{Kind: KindConflict, Msg: "cannot roll", Err: err}
	}
	dice, err := s.roller.Roll(round.ID)
	if err != nil {
		return domain.Round{}, unexpected("roll dice", err)
	}
	now := s.now()
	res := s.db.WithContext(ctx).Model(&domain.Round{}).
		Where("id = ? AND status = ?", round.ID, domain.RoundBetting).
		Updates(map[string]any{
			"status":    next,
			"die1":      dice[0],
			"die2":      dice[1],
			"die3":      dice[2],
			"rolled_at": now,
		})
	if res.Error != nil {
		return domain.Round{}, unexpected("start roll", res.Error)
	}
	if res.RowsAffected == 0 {
		return s.findRound(ctx, round.ID) // Lost the race; continue from whatever won
	}
	round.Status = next
	round.Die1, round.Die2, round.Die3 = dice[0], dice[1], dice[2]
	round.RolledAt = &now
	s.invalidateRounds(ctx, round.FamilyID)
	logrus.WithFields(logrus.Fields{
		"family_id":    round.FamilyID,
		"round_id":     round.ID,
		"round_number": round.RoundNumber,
		"user_id":      userID,
		"dice":         dice,
	}).Info("Round rolling")
	return round, nil
}

// settle pays every winning bet and marks the round settled, all or nothing
func (s *RoundService) settle(ctx context.Context, round domain.Round) (RoundView, error) {
	next, err := game.NextStatus(round.Status, game.EvtSettle)
	if err != nil {
		return RoundView{}, &Error{Kind: KindConflict, Msg: "cannot settle", Err: err}
	}
	dice := round.Faces()
	var (
		bets    []domain.Bet
		paid    int64
		winners []uint
	)
	now := s.now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Round{}).
			Where("id = ? AND status = ?", round.ID, domain.RoundRolling).
			Updates(map[string]any{"status": next, "settled_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoundSettled // Someone else settled it
		}
		if err := tx.Where("round_id = ?", round.ID).Order("created_at asc, id asc").Find(&bets).Error; err != nil {
			return err
		}
		ledger := s.ledger.WithTx(tx)
		for i := range bets {
			payout := game.Payout(bets[i].Symbol, bets[i].Amount, dice)
			if payout == 0 {
				continue
			}
			if err := tx.Model(&domain.Bet{}).Where("id = ?", bets[i].ID).Update("payout", payout).Error; err != nil {
				return err
			}
			if _, err := ledger.Credit(ctx, round.FamilyID, bets[i].UserID, payout, domain.TxPayout, round.ID); err != nil {
				return err
			}
			bets[i].Payout = payout
			paid += payout
			winners = append(winners, bets[i].UserID)
		}
		return nil
	})
	if err != nil {
		metrics.RecordSettlement("fail", 0)
		logrus.WithFields(logrus.Fields{
			"family_id": round.FamilyID,
			"round_id":  round.ID,
			"error":     err.Error(),
		}).Error("Settlement failed")
		return RoundView{}, classify("settle round", err)
	}
	round.Status = next
	round.SettledAt = &now
	s.ledger.Invalidate(ctx, round.FamilyID, winners...)
	s.invalidateRounds(ctx, round.FamilyID)
	metrics.RecordSettlement("success", paid)
	logrus.WithFields(logrus.Fields{
		"family_id":    round.FamilyID,
		"round_id":     round.ID,
		"round_number": round.RoundNumber,
		"bets":         len(bets),
		"paid":         paid,
	}).Info("Round settled")
	if bets == nil {
		bets = []domain.Bet{}
	}
	return RoundView{Round: round, Dice: dice, Bets: bets}, nil
}

// Current returns the family's latest round with its bets
func (s *RoundService) Current(ctx context.Context, familyID, userID uint) (RoundView, error) {
	if err := s.authorize(ctx, familyID, userID); err != nil {
		return RoundView{}, err
	}
	cacheKey := utils.CurrentRoundKey(familyID)
	var view RoundView
	if found, err := utils.GetCache(ctx, s.rdb, cacheKey, &view); err == nil && found {
		return view, nil
	}
	latest, err := s.latest(ctx, s.db, familyID)
	if err != nil {
		return RoundView{}, unexpected("load latest round", err)
	}
	if latest == nil {
		return RoundView{}, ErrRoundNotFound
	}
	views, err := s.withBets(ctx, []domain.Round{*latest})
	if err != nil {
		return RoundView{}, err
	}
	_ = utils.SetCache(ctx, s.rdb, cacheKey, views[0], roundCacheTTL)
	return views[0], nil
}

// RoundPage is one page of a family's rounds
type RoundPage struct {
	Rounds     []RoundView `json:"rounds"`      // Newest first
	Page       int         `json:"page"`        // Current page
	PageSize   int         `json:"page_size"`   // Page size
	Total      int64       `json:"total"`       // Total rounds
	TotalPages int         `json:"total_pages"` // Total pages
	Cached     bool        `json:"cached"`      // Served from Redis
}

// History lists the family's rounds newest first
func (s *RoundService) History(ctx context.Context, familyID, userID uint, page, pageSize int) (RoundPage, error) {
	if err := s.authorize(ctx, familyID, userID); err != nil {
		return RoundPage{}, err
	}
	page, pageSize = normalizePage(page, pageSize)
	cacheKey := utils.RoundHistoryKey(familyID, page, pageSize)
	var out RoundPage
	if found, err := utils.GetCache(ctx, s.rdb, cacheKey, &out); err == nil && found {
		out.Cached = true
		return out, nil
	}
	query := s.db.WithContext(ctx).Model(&domain.Round{}).Where("family_id = ?", familyID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return RoundPage{}, unexpected("count rounds", err)
	}
	var rounds []domain.Round
	if err := query.Order("round_number desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rounds).Error; err != nil {
		return RoundPage{}, unexpected("list rounds", err)
	}
	views, err := s.withBets(ctx, rounds)
	if err != nil {
		return RoundPage{}, err
	}
	out = RoundPage{
		Rounds:     views,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (int(total) + pageSize - 1) / pageSize,
	}
	_ = utils.SetCache(ctx, s.rdb, cacheKey, out, roundCacheTTL)
	return out, nil
}

// Wallet returns the caller's wallet in the family, creating it on first look
func (s *RoundService) Wallet(ctx context.Context, familyID, userID uint) (domain.Wallet, bool, error) {
	if err := s.authorize(ctx, familyID, userID); err != nil {
		return domain.Wallet{}, false, err
	}
	return s.ledger.Balance(ctx, familyID, userID)
}

// WalletHistory returns the caller's wallet transactions in the family
func (s *RoundService) WalletHistory(ctx context.Context, familyID, userID uint, page, pageSize int) (TxPage, error) {
	if err := s.authorize(ctx, familyID, userID); err != nil {
		return TxPage{}, err
	}
	return s.ledger.History(ctx, familyID, userID, page, pageSize)
}

// Grant credits chips to a member's wallet. Callers must have checked that
// the actor is allowed to grant.
func (s *RoundService) Grant(ctx context.Context, familyID, userID uint, amount int64) (domain.Wallet, error) {
	if err := s.authorize(ctx, familyID, userID); err != nil {
		return domain.Wallet{}, err
	}
	if amount <= 0 {
		return domain.Wallet{}, ErrInvalidAmount
	}
	var wallet domain.Wallet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := s.ledger.WithTx(tx)
		if _, err := ledger.GetOrCreate(ctx, familyID, userID); err != nil {
			return err
		}
		w, err := ledger.Credit(ctx, familyID, userID, amount, domain.TxGrant, "")
		wallet = w
		return err
	})
	if err != nil {
		return domain.Wallet{}, classify("grant chips", err)
	}
	s.ledger.Invalidate(ctx, familyID, userID)
	logrus.WithFields(logrus.Fields{
		"family_id": familyID,
		"user_id":   userID,
		"amount":    amount,
		"balance":   wallet.Balance,
	}).Info("Chips granted")
	return wallet, nil
}

// latest reads the family's highest-numbered round, or nil when there is none
func (s *RoundService) latest(ctx context.Context, db *gorm.DB, familyID uint) (*domain.Round, error) {
	var rounds []domain.Round
	err := db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("round_number desc").
		Limit(1).
		Find(&rounds).Error
	if err != nil {
		return nil, err
	}
	return game.Latest(rounds), nil
}

// findRound loads a round by id
func (s *RoundService) findRound(ctx context.Context, roundID string) (domain.Round, error) {
	if roundID == "" {
		return domain.Round{}, ErrRoundNotFound
	}
	var round domain.Round
	if err := s.db.WithContext(ctx).Where("id = ?", roundID).First(&round).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Round{}, ErrRoundNotFound
		}
		return domain.Round{}, unexpected("load round", err)
	}
	return round, nil
}

// withBets attaches bets and dice to each round, keeping the round order
func (s *RoundService) withBets(ctx context.Context, rounds []domain.Round) ([]RoundView, error) {
	views := make([]RoundView, len(rounds))
	if len(rounds) == 0 {
		return views, nil
	}
	ids := make([]string, len(rounds))
	for i, r := range rounds {
		ids[i] = r.ID
	}
	var bets []domain.Bet
	if err := s.db.WithContext(ctx).Where("round_id IN ?", ids).Order("created_at asc, id asc").Find(&bets).Error; err != nil {
		return nil, unexpected("list bets", err)
	}
	byRound := make(map[string][]domain.Bet, len(rounds))
	for _, b := range bets {
		byRound[b.RoundID] = append(byRound[b.RoundID], b)
	}
	for i, r := range rounds {
		views[i] = RoundView{Round: r, Dice: r.Faces(), Bets: byRound[r.ID]}
		if views[i].Bets == nil {
			views[i].Bets = []domain.Bet{}
		}
	}
	return views, nil
}

// invalidateRounds drops the cached current round and history pages
func (s *RoundService) invalidateRounds(ctx context.Context, familyID uint) {
	err := utils.DeleteCache(ctx, s.rdb, utils.CurrentRoundKey(familyID))
	if err == nil {
		err = utils.DeletePrefix(ctx, s.rdb, utils.RoundHistoryPrefix(familyID))
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"family_id": familyID,
			"error":     err.Error(),
		}).Warn("Round cache invalidation failed")
	}
}

// startOutcome labels a failed start request for metrics
func startOutcome(err error) string {
	switch KindOf(err) {
	case KindBadRequest:
		return "bad_request"
	case KindForbidden:
		return "forbidden"
	default:
		return "error"
	}
}
