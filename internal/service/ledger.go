package service

import (
	"context" // Request scoped cancellation
	"time"    // Cache TTLs

	"tetconnect/internal/domain" // Importing domain models
	"tetconnect/internal/utils"  // Cache helpers

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
	"gorm.io/gorm/clause"          // ON CONFLICT support
)

const walletCacheTTL = 60 * time.Second

// Ledger owns the per-(family, user) wallets and their transaction log.
// Every mutation writes the balance change and its Transaction row together.
type Ledger struct {
	db              *gorm.DB
	rdb             *redis.Client
	startingBalance int64
	bound           bool // true when db is a caller's transaction
}

// NewLedger creates a ledger; rdb may be nil
func NewLedger(db *gorm.DB, rdb *redis.Client, startingBalance int64) *Ledger {
	return &Ledger{db: db, rdb: rdb, startingBalance: startingBalance}
}

// WithTx returns a ledger whose writes join tx. Cache invalidation is left to
// the caller, who must run it after tx commits.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	c := *l
	c.db = tx
	c.bound = true
	return &c
}

// GetOrCreate returns the wallet for (family, user), creating it with the
// starting balance the first time. The unique index makes creation happen once
// even when two requests race.
func (l *Ledger) GetOrCreate(ctx context.Context, familyID, userID uint) (domain.Wallet, error) {
	fresh, err := domain.NewWallet(familyID, userID, l.startingBalance)
	if err != nil {
		return domain.Wallet{}, &Error{Kind: KindBadRequest, Msg: "invalid wallet owner", Err: err}
	}
	var wallet domain.Wallet
	created := false
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh) // Insert unless it already exists
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected == 1
		if err := tx.Where("family_id = ? AND user_id = ?", familyID, userID).First(&wallet).Error; err != nil {
			return err
		}
		if created && wallet.Balance > 0 {
			return appendTransaction(tx, wallet, domain.TxOpening, wallet.Balance, "") // Record the opening balance
		}
		return nil
	})
	if err != nil {
		return domain.Wallet{}, classify("get or create wallet", err)
	}
	if created && !l.bound {
		l.Invalidate(ctx, familyID, userID) // Drop history pages cached before the opening entry
	}
	return wallet, nil
}

// Debit removes amount from the wallet. The conditional update refuses to go
// below zero, so a failed debit leaves the balance untouched.
func (l *Ledger) Debit(ctx context.Context, familyID, userID uint, amount int64, roundID string) (domain.Wallet, error) {
	if amount <= 0 {
		return domain.Wallet{}, ErrInvalidAmount
	}
	var wallet domain.Wallet
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Wallet{}).
			Where("family_id = ? AND user_id = ? AND balance >= ?", familyID, userID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64 // Tell a missing wallet apart from a short one
			if err := tx.Model(&domain.Wallet{}).Where("family_id = ? AND user_id = ?", familyID, userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrWalletNotFound
			}
			return ErrInsufficientFunds
		}
		if err := tx.Where("family_id = ? AND user_id = ?", familyID, userID).First(&wallet).Error; err != nil {
			return err
		}
		return appendTransaction(tx, wallet, domain.TxBet, amount, roundID)
	})
	if err != nil {
		return domain.Wallet{}, classify("debit wallet", err)
	}
	if !l.bound {
		l.Invalidate(ctx, familyID, userID)
	}
	return wallet, nil
}

// Credit adds amount to the wallet; txType is recorded on the transaction row
func (l *Ledger) Credit(ctx context.Context, familyID, userID uint, amount int64, txType, roundID string) (domain.Wallet, error) {
	if amount <= 0 {
		return domain.Wallet{}, ErrInvalidAmount
	}
	var wallet domain.Wallet
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Wallet{}).
			Where("family_id = ? AND user_id = ?", familyID, userID).
			Update("balance", gorm.Expr("balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWalletNotFound
		}
		if err := tx.Where("family_id = ? AND user_id = ?", familyID, userID).First(&wallet).Error; err != nil {
			return err
		}
		return appendTransaction(tx, wallet, txType, amount, roundID)
	})
	if err != nil {
		return domain.Wallet{}, classify("credit wallet", err)
	}
	if !l.bound {
		l.Invalidate(ctx, familyID, userID)
	}
	return wallet, nil
}

// Balance returns the wallet, served from cache when possible
func (l *Ledger) Balance(ctx context.Context, familyID, userID uint) (domain.Wallet, bool, error) {
	cacheKey := utils.WalletKey(familyID, userID) // Cache key for wallet
	var wallet domain.Wallet
	if found, err := utils.GetCache(ctx, l.rdb, cacheKey, &wallet); err == nil && found {
		return wallet, true, nil
	}
	wallet, err := l.GetOrCreate(ctx, familyID, userID) // First look at the game creates the wallet
	if err != nil {
		return domain.Wallet{}, false, err
	}
	_ = utils.SetCache(ctx, l.rdb, cacheKey, wallet, walletCacheTTL)
	return wallet, false, nil
}

// TxPage is one page of wallet transactions
type TxPage struct {
	Transactions []domain.Transaction `json:"transactions"` // Newest first
	Page         int                  `json:"page"`         // Current page
	PageSize     int                  `json:"page_size"`    // Page size
	Total        int64                `json:"total"`        // Total transactions
	TotalPages   int                  `json:"total_pages"`  // Total pages
	Cached       bool                 `json:"cached"`       // Served from Redis
}

// History returns the wallet's transactions, newest first
func (l *Ledger) History(ctx context.Context, familyID, userID uint, page, pageSize int) (TxPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	cacheKey := utils.TxHistoryKey(familyID, userID, page, pageSize)
	var out TxPage
	if found, err := utils.GetCache(ctx, l.rdb, cacheKey, &out); err == nil && found {
		out.Cached = true
		return out, nil
	}
	query := l.db.WithContext(ctx).Model(&domain.Transaction{}).Where("family_id = ? AND user_id = ?", familyID, userID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return TxPage{}, unexpected("count transactions", err)
	}
	txs := []domain.Transaction{}
	if err := query.Order("id desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&txs).Error; err != nil {
		return TxPage{}, unexpected("list transactions", err)
	}
	out = TxPage{
		Transactions: txs,
		Page:         page,
		PageSize:     pageSize,
		Total:        total,
		TotalPages:   (int(total) + pageSize - 1) / pageSize,
	}
	_ = utils.SetCache(ctx, l.rdb, cacheKey, out, walletCacheTTL)
	return out, nil
}

// Invalidate drops cached wallets and transaction pages for the given users
func (l *Ledger) Invalidate(ctx context.Context, familyID uint, userIDs ...uint) {
	for _, userID := range userIDs {
		err := utils.DeleteCache(ctx, l.rdb, utils.WalletKey(familyID, userID))
		if err == nil {
			err = utils.DeletePrefix(ctx, l.rdb, utils.TxHistoryPrefix(familyID, userID))
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"family_id": familyID,
				"user_id":   userID,
				"error":     err.Error(),
			}).Warn("Wallet cache invalidation failed")
		}
	}
}

// appendTransaction writes the audit row for a wallet mutation
func appendTransaction(tx *gorm.DB, wallet domain.Wallet, txType string, amount int64, roundID string) error {
	t := domain.Transaction{
		WalletID:     wallet.ID,
		FamilyID:     wallet.FamilyID,
		UserID:       wallet.UserID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: wallet.Balance,
	}
	if roundID != "" {
		t.RoundID = &roundID
	}
	return tx.Create(&t).Error
}

// normalizePage applies the listing defaults: page 1, 20 per page, at most 100
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
