package updates

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/rostra/internal/domain/model"
)

// TxType is a finalized transaction kind.
type TxType string

// Transaction vocabulary.
const (
	TxSign     TxType = "sign"
	TxResign   TxType = "resign"
	TxTrade    TxType = "trade"
	TxRelease  TxType = "release"
	TxWaive    TxType = "waive"
	TxRetire   TxType = "retire"
	TxPractice TxType = "practice"
)

// DateLayout is the transaction date format.
const DateLayout = "2006-01-02"

// Years-with-team values written by a transaction.
const (
	yearsJoined = 0
	yearsLeft   = 31
)

// Transaction moves one player. FromTeam is optional; zero means the
// player's team before the move.
type Transaction struct {
	Date     string `validate:"required,datetime=2006-01-02"`
	PGID     int    `validate:"gte=0"`
	Type     TxType `validate:"required,oneof=sign resign trade release waive retire practice"`
	FromTeam int    `validate:"gte=0"`
	ToTeam   int    `validate:"required,gt=0"`
}

// LeavesTeam reports whether the move sends the player off a roster.
func (t TxType) LeavesTeam() bool {
	switch t {
	case TxRelease, TxWaive, TxRetire, TxPractice:
		return true
	}
	return false
}

// TxSummary reports what ExecuteTransactions did.
type TxSummary struct {
	Applied   map[TxType]int
	Unmatched []int // pgids with no PLAY row
}

var txValidate = validator.New()

// ExecuteTransactions validates the feed, then applies it in date order.
// Transactions on the same date keep feed order. Any invalid transaction
// fails the call before a player is changed.
func ExecuteTransactions(players []model.Player, feed []Transaction) ([]model.Player, TxSummary, error) {
	type dated struct {
		Transaction
		at time.Time
	}
	txs := make([]dated, 0, len(feed))
	var errs []error
	for i, tx := range feed {
		if err := txValidate.Struct(tx); err != nil {
			errs = append(errs, fmt.Errorf("%w: row %d pgid %d: %w", ErrInvalidTransaction, i, tx.PGID, err))
			continue
		}
		at, err := time.Parse(DateLayout, tx.Date)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: row %d date %q: %w", ErrInvalidTransaction, i, tx.Date, err))
			continue
		}
		txs = append(txs, dated{Transaction: tx, at: at})
	}
	if len(errs) > 0 {
		return nil, TxSummary{}, errors.Join(errs...)
	}
	slices.SortStableFunc(txs, func(a, b dated) int { return a.at.Compare(b.at) })

	out := model.ClonePlayers(players)
	index := make(map[int]int, len(out))
	for i := range out {
		index[out[i].PGID] = i
	}
	sum := TxSummary{Applied: make(map[TxType]int)}
	for _, tx := range txs {
		i, ok := index[tx.PGID]
		if !ok {
			sum.Unmatched = append(sum.Unmatched, tx.PGID)
			continue
		}
		apply(&out[i], tx.Transaction)
		sum.Applied[tx.Type]++
	}
	return out, sum, nil
}

func apply(p *model.Player, tx Transaction) {
	prev := p.TGID
	p.TGID = tx.ToTeam
	p.PrevTeam = prev
	if tx.FromTeam != 0 {
		p.PrevTeam = tx.FromTeam
	}
	if tx.Type.LeavesTeam() {
		p.YearsWithTeam = yearsLeft
	} else {
		p.YearsWithTeam = yearsJoined
	}
}
