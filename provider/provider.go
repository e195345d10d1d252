// Package provider implements the Keeper Wallet provider for the signer
// library: a session manager that gates every privileged operation behind
// the wallet's readiness and a network-identity check, and shapes
// transactions through the adapter in both directions.
package provider

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Keeper-Wallet/provider-keeper/adapter"
	"github.com/Keeper-Wallet/provider-keeper/events"
	"github.com/Keeper-Wallet/provider-keeper/internal/address"
	"github.com/Keeper-Wallet/provider-keeper/internal/metrics"
	"github.com/Keeper-Wallet/provider-keeper/keeper"
	"github.com/Keeper-Wallet/provider-keeper/nodeapi"
	"github.com/Keeper-Wallet/provider-keeper/signer"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultMaxRetries   = 10
	authNonceLen        = 16
)

// Config carries the collaborators and tunables of a provider instance.
// The zero value discovers the wallet at the default bridge URL.
type Config struct {
	// Locator probes for the wallet announcement. Defaults to the HTTP
	// bridge at keeper.DefaultBridgeURL.
	Locator keeper.Locator

	// PollInterval and MaxRetries bound the readiness polling. Defaults:
	// 100ms, 10 retries.
	PollInterval time.Duration
	MaxRetries   int

	// Estimator resolves InvokeScript fees before signing. Defaults to the
	// node REST client.
	Estimator nodeapi.Estimator
}

// Keeper is the wallet provider session manager. Instances are independent
// of each other; the only shared external state is the wallet announcement
// itself, which is read-only from here.
type Keeper struct {
	mu      sync.Mutex
	user    *signer.UserData
	options *signer.ConnectOptions

	handle    *handle
	authData  keeper.AuthData
	emitter   *events.Emitter[signer.AuthEvent, *signer.UserData]
	estimator nodeapi.Estimator
}

// New creates a provider and immediately starts awaiting the wallet
// announcement.
func New(cfg Config) *Keeper {
	if cfg.Locator == nil {
		cfg.Locator = keeper.NewHTTPLocator(keeper.DefaultBridgeURL, nil)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.Estimator == nil {
		cfg.Estimator = nodeapi.NewClient(nil)
	}

	return &Keeper{
		handle:    awaitKeeper(cfg.Locator, cfg.PollInterval, cfg.MaxRetries),
		authData:  keeper.AuthData{Data: newAuthNonce()},
		emitter:   events.New[signer.AuthEvent, *signer.UserData](),
		estimator: cfg.Estimator,
	}
}

// newAuthNonce builds the per-instance auth payload: 16 random bytes,
// base16 encoded.
func newAuthNonce() string {
	nonce := make([]byte, authNonceLen)
	if _, err := rand.Read(nonce); err != nil {
		panic(errors.Wrap(err, "failed to read random auth nonce"))
	}
	return hex.EncodeToString(nonce)
}

// User returns the account of the current session, or nil before Login.
func (k *Keeper) User() *signer.UserData {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.user
}

// Connect stores the caller's expected network identity and releases the
// connect gate. Idempotent; calling again simply replaces the options. It
// performs no wallet round-trip: the identity is checked live on every
// gated operation instead.
func (k *Keeper) Connect(_ context.Context, options signer.ConnectOptions) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.options = &options
	return nil
}

// Login performs the auth handshake, caches the account and emits the
// login event.
func (k *Keeper) Login(ctx context.Context) (user *signer.UserData, err error) {
	defer func() { metrics.ObserveLogin(err) }()

	api, options, err := k.ensureNetwork(ctx)
	if err != nil {
		return nil, err
	}

	account, err := api.Auth(ctx, k.authData)
	if err != nil {
		return nil, err
	}
	if !address.Matches(account.Address, account.PublicKey, options.NetworkByte) {
		return nil, errors.Errorf(
			"keeper returned inconsistent account: address %s does not match public key %s on network %d",
			account.Address, account.PublicKey, options.NetworkByte)
	}

	user = &signer.UserData{Address: account.Address, PublicKey: account.PublicKey}
	k.mu.Lock()
	k.user = user
	k.mu.Unlock()

	k.emitter.Emit(signer.EventLogin, user)
	return user, nil
}

// Logout clears the cached session and emits the logout event. Purely
// local bookkeeping; it never fails and does not touch the wallet.
func (k *Keeper) Logout(_ context.Context) error {
	k.mu.Lock()
	k.user = nil
	k.mu.Unlock()

	k.emitter.Emit(signer.EventLogout, nil)
	return nil
}

// On registers a lifecycle event handler and returns its cancellation.
func (k *Keeper) On(event signer.AuthEvent, handler signer.Handler) signer.Subscription {
	return signer.Subscription(k.emitter.Subscribe(event, handler))
}

// Once registers a handler that fires at most once.
func (k *Keeper) Once(event signer.AuthEvent, handler signer.Handler) signer.Subscription {
	return signer.Subscription(k.emitter.SubscribeOnce(event, handler))
}

// Off cancels a subscription returned by On or Once.
func (k *Keeper) Off(sub signer.Subscription) {
	if sub != nil {
		sub()
	}
}

// SignMessage requests a version-1 custom-data signature over the message
// bytes.
func (k *Keeper) SignMessage(ctx context.Context, message string) (string, error) {
	api, _, err := k.ensureNetwork(ctx)
	if err != nil {
		return "", err
	}

	signature, err := api.SignCustomData(ctx, keeper.CustomData{
		Version: 1,
		Binary:  "base64:" + base64.StdEncoding.EncodeToString([]byte(message)),
	})
	if err != nil {
		return "", err
	}
	return signature.Signature, nil
}

// SignTypedData requests a version-2 custom-data signature over typed
// key/value entries.
func (k *Keeper) SignTypedData(ctx context.Context, data []signer.TypedData) (string, error) {
	api, _, err := k.ensureNetwork(ctx)
	if err != nil {
		return "", err
	}

	signature, err := api.SignCustomData(ctx, keeper.CustomData{
		Version: 2,
		Data:    data,
	})
	if err != nil {
		return "", err
	}
	return signature.Signature, nil
}

// Sign maps every transaction to the wallet envelope, signs the batch and
// maps the results back, preserving input order. A batch of one goes
// through the wallet's single-transaction entry point, anything larger
// through its package entry point; the two are distinct wire operations.
func (k *Keeper) Sign(ctx context.Context, txs []signer.Tx) (signed []*signer.SignedTx, err error) {
	start := time.Now()
	defer func() { metrics.ObserveSign(start, err) }()

	api, options, err := k.ensureNetwork(ctx)
	if err != nil {
		return nil, err
	}

	mapped := make([]*keeper.SignTx, len(txs))
	for i, tx := range txs {
		mapped[i], err = adapter.ToKeeperTx(k.txWithFee(ctx, api, options, tx))
		if err != nil {
			return nil, err
		}
	}

	if len(mapped) == 1 {
		raw, err := api.SignTransaction(ctx, mapped[0])
		if err != nil {
			return nil, err
		}
		tx, err := adapter.ParseSignedTx(raw)
		if err != nil {
			return nil, err
		}
		return []*signer.SignedTx{tx}, nil
	}

	raws, err := api.SignTransactionPackage(ctx, mapped)
	if err != nil {
		return nil, err
	}
	if len(raws) != len(mapped) {
		return nil, errors.Errorf("keeper signed %d of %d transactions", len(raws), len(mapped))
	}

	signed = make([]*signer.SignedTx, len(raws))
	for i, raw := range raws {
		signed[i], err = adapter.ParseSignedTx(raw)
		if err != nil {
			return nil, err
		}
	}
	return signed, nil
}

// ensureNetwork is the gate every privileged operation passes: the wallet
// must have announced itself, Connect must have been called, and the
// wallet's live network byte must match the configured one. The check runs
// on every call because the wallet's active network can change between
// calls.
func (k *Keeper) ensureNetwork(ctx context.Context) (keeper.API, *signer.ConnectOptions, error) {
	api, err := k.handle.await(ctx)
	if err != nil {
		return nil, nil, err
	}

	k.mu.Lock()
	options := k.options
	k.mu.Unlock()
	if options == nil {
		return nil, nil, newError(ErrCodeNotConnected, "connect options are not set: call Connect first")
	}

	state, err := api.PublicState(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read keeper public state")
	}
	if state.Network.Code == "" {
		return nil, nil, newError(ErrCodeNetworkMismatch, "keeper reported an empty network code")
	}

	actual := state.Network.Code[0]
	if actual != options.NetworkByte {
		return nil, nil, newError(ErrCodeNetworkMismatch,
			"invalid connect options: signer connect (%s %d) not equals keeper connect (%s %d)",
			options.NodeURL, options.NetworkByte, state.Network.Server, actual)
	}
	return api, options, nil
}

// txWithFee prefills the fee of an InvokeScript transaction that has none,
// asking the configured node. Estimation failures are recoverable: the
// transaction goes to the wallet without a fee and the wallet handles it.
func (k *Keeper) txWithFee(ctx context.Context, api keeper.API, options *signer.ConnectOptions, tx signer.Tx) signer.Tx {
	invoke, ok := tx.(*signer.InvokeScriptTx)
	if !ok || !invoke.Fee.IsZero() {
		return tx
	}

	clone := *invoke
	if clone.Payment == nil {
		clone.Payment = []signer.Payment{}
	}
	if clone.SenderPublicKey == "" {
		clone.SenderPublicKey = k.senderPublicKey(ctx, api)
	}

	estimate, err := k.estimator.CalculateFee(ctx, options.NodeURL, &clone)
	if err != nil {
		log.Warn().
			Str("node", options.NodeURL).
			Err(err).
			Msg("Fee estimation failed, signing without a prefilled fee")
		return tx
	}

	clone.Fee = estimate.FeeAmount
	return &clone
}

// senderPublicKey is the cached user's key, or the wallet's active account
// key as a fallback.
func (k *Keeper) senderPublicKey(ctx context.Context, api keeper.API) string {
	k.mu.Lock()
	user := k.user
	k.mu.Unlock()
	if user != nil {
		return user.PublicKey
	}

	state, err := api.PublicState(ctx)
	if err != nil || state.Account == nil {
		return ""
	}
	return state.Account.PublicKey
}

var _ signer.Provider = (*Keeper)(nil)
