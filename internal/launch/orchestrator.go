// internal/launch/orchestrator.go
package launch

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"github.com/rovshanmuradov/token-launcher/internal/wallet"
	"go.uber.org/zap"
)

// Broadcaster отправляет подписанную транзакцию в сеть.
type Broadcaster interface {
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts blockchain.TransactionOptions) (solana.Signature, error)
}

// Recorder сохраняет завершённый запуск.
type Recorder interface {
	Append(ctx context.Context, wallet string, rec ledger.Record) error
}

// Attempt — итог одной попытки запуска.
type Attempt struct {
	State     State
	Result    Result[ledger.Record]
	Trail     []State
	Mint      string
	Signature string
}

// Orchestrator проводит запуск по стадиям от валидации до записи в ledger.
type Orchestrator struct {
	registry    *Registry
	images      ImageResolver
	broadcaster Broadcaster
	recorder    Recorder
	guard       *InFlightGuard
	observers   []Observer
	now         func() time.Time
	logger      *zap.Logger
}

type Option func(*Orchestrator)

// WithObserver добавляет наблюдателя за переходами.
func WithObserver(o Observer) Option {
	return func(or *Orchestrator) { or.observers = append(or.observers, o) }
}

// WithInFlightGuard включает ограничение одной попытки на кошелёк. nil отключает.
func WithInFlightGuard(g *InFlightGuard) Option {
	return func(or *Orchestrator) { or.guard = g }
}

func WithClock(now func() time.Time) Option {
	return func(or *Orchestrator) { or.now = now }
}

func NewOrchestrator(
	registry *Registry,
	images ImageResolver,
	broadcaster Broadcaster,
	recorder Recorder,
	logger *zap.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		registry:    registry,
		images:      images,
		broadcaster: broadcaster,
		recorder:    recorder,
		now:         time.Now,
		logger:      logger.Named("orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run — состояние одной попытки.
type run struct {
	o        *Orchestrator
	wallet   string
	platform Platform
	state    State
	entered  time.Time
	trail    []State
	logger   *zap.Logger
}

func (r *run) enter(to State, reason string) {
	now := r.o.now()
	t := Transition{
		From:     r.state,
		To:       to,
		Wallet:   r.wallet,
		Platform: r.platform,
		Reason:   reason,
		At:       now,
		Elapsed:  now.Sub(r.entered),
	}
	r.state = to
	r.entered = now
	r.trail = append(r.trail, to)

	r.logger.Debug("Launch state changed", zap.String("state", to.String()))
	for _, obs := range r.o.observers {
		obs(t)
	}
}

func (r *run) fail(reason string) Attempt {
	r.enter(Failed, reason)
	r.logger.Warn("Launch failed", zap.String("reason", reason))
	return Attempt{State: Failed, Result: Err[ledger.Record](reason), Trail: r.trail}
}

// Launch выполняет одну попытку запуска токена для подключённого кошелька.
// Отмена ctx учитывается только до запроса подписи.
func (o *Orchestrator) Launch(ctx context.Context, acct wallet.Account, params Params) Attempt {
	r := &run{
		o:        o,
		platform: params.Platform,
		state:    Idle,
		entered:  o.now(),
		trail:    []State{Idle},
		logger:   o.logger.With(zap.String("platform", string(params.Platform))),
	}
	if acct != nil && acct.Connected() {
		r.wallet = acct.PublicKey().String()
		r.logger = r.logger.With(zap.String("wallet", r.wallet))
	}

	r.enter(Validating, "")
	if acct == nil || !acct.Connected() {
		return r.fail(ErrWalletNotConnected.Error())
	}
	if err := params.Validate(); err != nil {
		return r.fail(err.Error())
	}
	adapter, err := o.registry.Get(params.Platform)
	if err != nil {
		return r.fail(ErrUnsupportedPlatform.Error())
	}
	if o.guard != nil {
		release, ok := o.guard.TryAcquire(r.wallet)
		if !ok {
			return r.fail(ErrLaunchInProgress.Error())
		}
		defer release()
	}
	if err := ctx.Err(); err != nil {
		return r.fail(err.Error())
	}

	r.enter(ResolvingImage, "")
	resolution := o.images.Resolve(ctx, params.Image)
	if err := ctx.Err(); err != nil {
		return r.fail(err.Error())
	}

	r.enter(BuildingTransaction, "")
	built := adapter.BuildUnsignedLaunch(ctx, BuildRequest{
		Params: params,
		Wallet: acct.PublicKey(),
		Image:  resolution,
	})
	unsigned, ok := built.Unwrap()
	if !ok {
		return r.fail(built.Reason())
	}
	r.logger.Info("Unsigned launch built",
		zap.String("platform", string(params.Platform)),
		zap.String("mint", unsigned.Mint))

	signer, canSign := acct.(wallet.Signer)
	if !canSign {
		return r.fail(ErrSigningUnsupported.Error())
	}
	if err := ctx.Err(); err != nil {
		return r.fail(err.Error())
	}

	// С этого момента попытка доводится до конца.
	ctx = context.WithoutCancel(ctx)

	r.enter(AwaitingWalletSignature, "")
	if err := signer.SignTransaction(ctx, unsigned.Tx); err != nil {
		return r.fail(err.Error())
	}

	if registrar, ok := adapter.(Registrar); ok {
		r.enter(RegisteringWithPlatform, "")
		if reg := registrar.RegisterSigned(ctx, unsigned.Tx); !reg.IsOk() {
			return r.fail(reg.Reason())
		}
	}

	r.enter(Broadcasting, "")
	sig, err := o.broadcaster.SendTransactionWithOpts(ctx, unsigned.Tx, blockchain.TransactionOptions{
		SkipPreflight: true,
	})
	if err != nil {
		return r.fail(broadcastReason(err))
	}
	r.logger.Info("Transaction broadcast", zap.String("signature", sig.String()))

	r.enter(Recording, "")
	created := o.now()
	rec := ledger.Record{
		ID:           ledger.RecordID(unsigned.Mint, created),
		Name:         params.Name,
		Symbol:       params.Symbol,
		Description:  params.Description,
		Mint:         unsigned.Mint,
		TxID:         sig.String(),
		Platform:     string(params.Platform),
		SolAmount:    params.SolAmount,
		Timestamp:    created.UTC().Format(time.RFC3339Nano),
		Website:      params.Website,
		TwitterURL:   params.TwitterURL,
		MetadataLink: unsigned.MetadataLink,
	}
	if err := o.recorder.Append(ctx, r.wallet, rec); err != nil {
		// Транзакция уже в сети: попытка завершается как Done.
		r.logger.Error("Failed to record launch",
			zap.String("signature", sig.String()),
			zap.Error(err))
	}

	r.enter(Done, "")
	r.logger.Info("Launch completed", zap.String("symbol", params.Symbol))

	return Attempt{
		State:     Done,
		Result:    Ok(rec),
		Trail:     r.trail,
		Mint:      unsigned.Mint,
		Signature: sig.String(),
	}
}

func broadcastReason(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "broadcast failed"
}
