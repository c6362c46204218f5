package bonk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"github.com/rovshanmuradov/token-launcher/internal/storage/memory"
	"github.com/rovshanmuradov/token-launcher/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// fixedBuilder возвращает заранее собранную транзакцию и запоминает параметры.
type fixedBuilder struct {
	mu     sync.Mutex
	params []BuildParams
}

func (b *fixedBuilder) BuildCreateAndBuy(_ context.Context, p BuildParams) (*solana.Transaction, error) {
	b.mu.Lock()
	b.params = append(b.params, p)
	b.mu.Unlock()

	return solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, p.Owner, p.Owner).Build()},
		solana.Hash{9},
		solana.TransactionPayer(p.Owner),
	)
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []*solana.Transaction
}

func (r *recordingBroadcaster) SendTransactionWithOpts(_ context.Context, tx *solana.Transaction, _ blockchain.TransactionOptions) (solana.Signature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, tx)
	return solana.Signature{7}, nil
}

type platformStub struct {
	mintResponse string
	sendResponse string

	mu       sync.Mutex
	sendTxs  []string
	mintForm map[string]string
}

func (s *platformStub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/create/get-random-mint", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		s.mu.Lock()
		s.mintForm = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			s.mintForm[k] = v[0]
		}
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(s.mintResponse))
	})
	mux.HandleFunc("/create/sendTransaction", func(w http.ResponseWriter, r *http.Request) {
		var body sendTransactionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		s.mu.Lock()
		s.sendTxs = append(s.sendTxs, body.Txs...)
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(s.sendResponse))
	})
	return mux
}

type bonkFixture struct {
	orch        *launch.Orchestrator
	builder     *fixedBuilder
	broadcaster *recordingBroadcaster
	ledger      *ledger.Ledger
	stub        *platformStub
}

func newBonkFixture(t *testing.T, stub *platformStub) *bonkFixture {
	t.Helper()
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)

	logger := zaptest.NewLogger(t)
	f := &bonkFixture{
		builder:     &fixedBuilder{},
		broadcaster: &recordingBroadcaster{},
		ledger:      ledger.New(memory.New(), logger),
		stub:        stub,
	}

	adapter := NewAdapter(
		NewContext(StaticLoader(), logger),
		NewMintClient(srv.URL, srv.Client(), logger),
		f.builder,
		BonkPlatformID2,
		logger,
	)
	reg := launch.NewRegistry(logger)
	require.NoError(t, reg.Register(adapter))

	f.orch = launch.NewOrchestrator(reg, image.NewResolver(srv.Client(), logger), f.broadcaster, f.ledger, logger,
		launch.WithInFlightGuard(launch.NewInFlightGuard()))
	return f
}

func bonkParams() launch.Params {
	return launch.Params{
		Name:        "Bonk Cat",
		Symbol:      "BCAT",
		Description: "a cat",
		TwitterURL:  "https://x.com/CryptoBuilder/status/2",
		Platform:    launch.PlatformBonk,
		SolAmount:   1,
	}
}

func TestBonkLaunchEndToEnd(t *testing.T) {
	stub := &platformStub{
		mintResponse: `{"id":"1","success":true,"data":{"mint":"M","metadataLink":"L"}}`,
		sendResponse: `{"success":true}`,
	}
	f := newBonkFixture(t, stub)
	w := wallet.Generate()

	attempt := f.orch.Launch(context.Background(), w, bonkParams())

	require.Equal(t, launch.Done, attempt.State, attempt.Result.Reason())
	assert.Contains(t, attempt.Trail, launch.RegisteringWithPlatform)

	records := f.ledger.ReadAll(context.Background(), w.PublicKey().String())
	require.Len(t, records, 1)
	assert.Equal(t, "M", records[0].Mint)
	assert.Equal(t, "bonk", records[0].Platform)
	assert.Equal(t, "L", records[0].MetadataLink)

	// Зарегистрирована ровно та транзакция, что ушла в сеть, уже с подписью кошелька.
	require.Len(t, stub.sendTxs, 1)
	require.Len(t, f.broadcaster.sent, 1)
	raw, err := base64.StdEncoding.DecodeString(stub.sendTxs[0])
	require.NoError(t, err)
	registered, err := solana.TransactionFromBytes(raw)
	require.NoError(t, err)
	assert.True(t, wallet.IsSignedBy(registered, w.PublicKey()))
}

func TestBonkRegistrationRejected(t *testing.T) {
	stub := &platformStub{
		mintResponse: `{"id":"1","success":true,"data":{"mint":"M","metadataLink":"L"}}`,
		sendResponse: `{"success":false,"error":"rejected"}`,
	}
	f := newBonkFixture(t, stub)
	w := wallet.Generate()

	attempt := f.orch.Launch(context.Background(), w, bonkParams())

	assert.Equal(t, launch.Failed, attempt.State)
	assert.Equal(t, "rejected", attempt.Result.Reason())
	assert.Empty(t, f.broadcaster.sent)
	assert.Empty(t, f.ledger.ReadAll(context.Background(), w.PublicKey().String()))
}

func TestBonkRegistrationRejectedWithoutMessage(t *testing.T) {
	stub := &platformStub{
		mintResponse: `{"id":"1","success":true,"data":{"mint":"M","metadataLink":"L"}}`,
		sendResponse: `{"success":false}`,
	}
	f := newBonkFixture(t, stub)

	attempt := f.orch.Launch(context.Background(), wallet.Generate(), bonkParams())

	assert.Equal(t, launch.Failed, attempt.State)
	assert.Equal(t, ErrRegistrationFallback, attempt.Result.Reason())
}

func TestBonkConvertsSolToLamports(t *testing.T) {
	stub := &platformStub{
		mintResponse: `{"id":"1","success":true,"data":{"mint":"M","metadataLink":"L"}}`,
		sendResponse: `{"success":true}`,
	}
	f := newBonkFixture(t, stub)

	f.orch.Launch(context.Background(), wallet.Generate(), bonkParams())

	require.Len(t, f.builder.params, 1)
	p := f.builder.params[0]
	assert.Equal(t, uint64(1_000_000_000), p.BuyLamports)
	assert.Equal(t, SlippageBps, p.SlippageBps)
	assert.Equal(t, "M", p.Mint)
	assert.Equal(t, "L", p.URI)
	assert.Equal(t, Decimals, p.Decimals)
	assert.Equal(t, DefaultConfigID, p.Config.ID)
}

func TestBonkMintServiceFailure(t *testing.T) {
	stub := &platformStub{
		mintResponse: `{"id":"1","success":false,"msg":"rate limited"}`,
		sendResponse: `{"success":true}`,
	}
	f := newBonkFixture(t, stub)

	attempt := f.orch.Launch(context.Background(), wallet.Generate(), bonkParams())

	assert.Equal(t, launch.Failed, attempt.State)
	assert.Equal(t, "rate limited", attempt.Result.Reason())
	assert.Empty(t, f.builder.params)
	assert.Empty(t, stub.sendTxs)
}

func TestAdapterDefaults(t *testing.T) {
	a := NewAdapter(NewContext(nil, zap.NewNop()), NewMintClient(DefaultMintHost, nil, zap.NewNop()), &fixedBuilder{}, "", zap.NewNop())
	assert.Equal(t, launch.PlatformBonk, a.Platform())
	assert.Equal(t, BonkPlatformID2, a.platformID)
}
