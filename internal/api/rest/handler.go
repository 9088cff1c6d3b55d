package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/chain"
	"github.com/warplabs/warps-engine/internal/chainstate"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/inventory"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/notifier"
	"github.com/warplabs/warps-engine/internal/reconciler"
	"github.com/warplabs/warps-engine/internal/store"
	"github.com/warplabs/warps-engine/internal/tracker"
	"github.com/warplabs/warps-engine/internal/webhook"
)

// webhookReplayWindow bounds how old a signed frame webhook delivery may be
const webhookReplayWindow = 5 * 60 // seconds

// Config holds REST handler configuration
type Config struct {
	// WebhookSecret verifies inbound frame webhook signatures
	WebhookSecret string
	// FrameURL is the mini app URL used in confirmation casts
	FrameURL string
}

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// GetState returns the shared game state snapshot
	// GET /api/v1/state
	GetState(c *gin.Context)

	// ListTokens returns the owner's token inventory page
	// GET /api/v1/tokens/:owner?more=true
	ListTokens(c *gin.Context)

	// GetSession returns the owner's composite session snapshot
	// GET /api/v1/game/sessions/:owner
	GetSession(c *gin.Context)

	// SelectToken toggles a token into the owner's composite selection
	// POST /api/v1/game/select
	SelectToken(c *gin.Context)

	// ClearSelection resets the owner's selection
	// POST /api/v1/game/clear
	ClearSelection(c *gin.Context)

	// SubmitComposite submits the owner's selected pair on chain
	// POST /api/v1/game/composite
	SubmitComposite(c *gin.Context)

	// Mint mints a token for the owner, free when the entitlement is unspent
	// POST /api/v1/game/mint
	Mint(c *gin.Context)

	// ClaimPrize claims the prize pool with a winning token
	// POST /api/v1/game/claim
	ClaimPrize(c *gin.Context)

	// AwardPoints records a points entry
	// POST /api/v1/points
	AwardPoints(c *gin.Context)

	// GetPoints returns a player's points total
	// GET /api/v1/points/:username
	GetPoints(c *gin.Context)

	// GetLeaderboard returns the top point earners
	// GET /api/v1/points?limit=<limit>
	GetLeaderboard(c *gin.Context)

	// SaveReferral records a referral; duplicates are benign
	// POST /api/v1/referrals
	SaveReferral(c *gin.Context)

	// HandleFrameWebhook ingests signed frame lifecycle events
	// POST /api/v1/webhooks/frame
	HandleFrameWebhook(c *gin.Context)

	// AdminMint performs the server-signed owner mint (privileged)
	// POST /api/v1/admin/mint
	AdminMint(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	config     Config
	store      store.Store
	chainstate chainstate.Provider
	inventory  inventory.Inventory
	reconciler reconciler.Reconciler
	gateway    chain.Gateway
	tracker    tracker.Tracker
	casts      notifier.CastPublisher
	points     notifier.PointsLedger
	signer     adapter.Signer
	clock      adapter.Clock
}

// NewHandler creates a new REST API handler
func NewHandler(
	config Config,
	st store.Store,
	cs chainstate.Provider,
	inv inventory.Inventory,
	rec reconciler.Reconciler,
	gw chain.Gateway,
	tr tracker.Tracker,
	casts notifier.CastPublisher,
	points notifier.PointsLedger,
	signer adapter.Signer,
	clock adapter.Clock,
) Handler {
	return &handler{
		config:     config,
		store:      st,
		chainstate: cs,
		inventory:  inv,
		reconciler: rec,
		gateway:    gw,
		tracker:    tr,
		casts:      casts,
		points:     points,
		signer:     signer,
		clock:      clock,
	}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// stateResponse is the rendered shared game state
type stateResponse struct {
	WinningColor    string `json:"winning_color"`
	PrizePoolWei    string `json:"prize_pool_wei"`
	ClaimPercentage uint64 `json:"claim_percentage"`
	MintPriceWei    string `json:"mint_price_wei"`
}

// GetState returns the shared game state snapshot
func (h *handler) GetState(c *gin.Context) {
	snapshot, err := h.chainstate.State(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to read game state")
		return
	}

	c.JSON(http.StatusOK, stateResponse{
		WinningColor:    snapshot.WinningColor,
		PrizePoolWei:    snapshot.PrizePoolWei.String(),
		ClaimPercentage: snapshot.ClaimPercentage,
		MintPriceWei:    snapshot.MintPriceWei.String(),
	})
}

// tokenView decorates a token with its highlight state
type tokenView struct {
	domain.Token
	IsHighlighted bool `json:"is_highlighted"`
}

// ListTokens returns the owner's token inventory page
func (h *handler) ListTokens(c *gin.Context) {
	owner, ok := h.ownerParam(c)
	if !ok {
		return
	}

	var page *inventory.Page
	var err error
	if c.Query("more") == "true" {
		page, err = h.inventory.LoadMore(c.Request.Context(), owner)
	} else {
		page, err = h.inventory.List(c.Request.Context(), owner)
	}
	if err != nil {
		respondInternalError(c, err, "Failed to list tokens")
		return
	}

	tokens := make([]tokenView, 0, len(page.Tokens))
	for _, token := range page.Tokens {
		tokens = append(tokens, tokenView{
			Token:         *token,
			IsHighlighted: h.reconciler.IsHighlighted(token.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens":   tokens,
		"has_more": page.HasMore,
	})
}

// GetSession returns the owner's composite session snapshot
func (h *handler) GetSession(c *gin.Context) {
	owner, ok := h.ownerParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.reconciler.Session(owner))
}

// selectRequest identifies the token a player toggles
type selectRequest struct {
	Address string `json:"address" binding:"required"`
	TokenID uint64 `json:"token_id" binding:"required"`
}

// SelectToken toggles a token into the owner's composite selection
func (h *handler) SelectToken(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	owner, ok := h.parseAddress(c, req.Address)
	if !ok {
		return
	}

	token, err := h.loadedToken(c, owner, req.TokenID)
	if err != nil {
		return
	}

	snapshot, err := h.reconciler.Select(owner, token)
	if err != nil {
		// Selection rule violations are part of the flow, not failures:
		// return the resulting state alongside the rule that fired
		c.JSON(http.StatusOK, gin.H{
			"session": snapshot,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": snapshot})
}

// ownerRequest identifies the acting player
type ownerRequest struct {
	Address string `json:"address" binding:"required"`
}

// ClearSelection resets the owner's selection
func (h *handler) ClearSelection(c *gin.Context) {
	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	owner, ok := h.parseAddress(c, req.Address)
	if !ok {
		return
	}

	h.reconciler.ClearSelection(owner)
	c.JSON(http.StatusOK, gin.H{"session": h.reconciler.Session(owner)})
}

// SubmitComposite submits the owner's selected pair on chain
func (h *handler) SubmitComposite(c *gin.Context) {
	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	owner, ok := h.parseAddress(c, req.Address)
	if !ok {
		return
	}

	submission, err := h.reconciler.SubmitComposite(c.Request.Context(), owner, h.signer)
	if err != nil {
		h.respondSubmitError(c, err, "Failed to submit composite")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"tx_hash": submission.Handle.Hash.Hex(),
		"session": h.reconciler.Session(owner),
	})
}

// Mint mints a token for the owner
func (h *handler) Mint(c *gin.Context) {
	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	owner, ok := h.parseAddress(c, req.Address)
	if !ok {
		return
	}

	submission, err := h.reconciler.Mint(c.Request.Context(), owner, h.signer)
	if err != nil {
		h.respondSubmitError(c, err, "Failed to submit mint")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"tx_hash": submission.Handle.Hash.Hex()})
}

// claimRequest identifies the claiming token
type claimRequest struct {
	Address string `json:"address" binding:"required"`
	TokenID uint64 `json:"token_id" binding:"required"`
}

// ClaimPrize claims the prize pool with a winning token
func (h *handler) ClaimPrize(c *gin.Context) {
	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	owner, ok := h.parseAddress(c, req.Address)
	if !ok {
		return
	}

	submission, err := h.reconciler.ClaimPrize(c.Request.Context(), owner, req.TokenID, h.signer)
	if err != nil {
		h.respondSubmitError(c, err, "Failed to submit claim")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"tx_hash": submission.Handle.Hash.Hex()})
}

// awardPointsRequest is one earned-points entry
type awardPointsRequest struct {
	Username string `json:"username" binding:"required"`
	Points   int64  `json:"points" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

// AwardPoints records a points entry
func (h *handler) AwardPoints(c *gin.Context) {
	var req awardPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.Points <= 0 {
		respondValidationError(c, "points must be positive")
		return
	}

	if err := h.store.AwardPoints(c.Request.Context(), req.Username, req.Points, req.Reason, h.clock.Now()); err != nil {
		respondInternalError(c, err, "Failed to award points")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}

// GetPoints returns a player's points total
func (h *handler) GetPoints(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		respondBadRequest(c, "Username is required")
		return
	}

	total, err := h.store.GetPointsTotal(c.Request.Context(), username)
	if err != nil {
		respondInternalError(c, err, "Failed to get points total")
		return
	}

	c.JSON(http.StatusOK, total)
}

// GetLeaderboard returns the top point earners
func (h *handler) GetLeaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondValidationError(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	leaderboard, err := h.store.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, err, "Failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": leaderboard})
}

// referralRequest records who brought whom in
type referralRequest struct {
	Referrer     string `json:"referrer" binding:"required"`
	ReferredUser string `json:"referred_user" binding:"required"`
}

// SaveReferral records a referral; duplicates are benign
func (h *handler) SaveReferral(c *gin.Context) {
	var req referralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.Referrer == req.ReferredUser {
		respondValidationError(c, "referrer and referred user must differ")
		return
	}

	created, err := h.store.SaveReferral(c.Request.Context(), req.Referrer, req.ReferredUser)
	if err != nil {
		respondInternalError(c, err, "Failed to save referral")
		return
	}

	if created {
		// Referral points are best effort; the referral itself is recorded
		if err := h.points.Award(c.Request.Context(), req.Referrer, notifier.ReasonReferral); err != nil {
			logger.Warn("Failed to award referral points",
				zap.String("referrer", req.Referrer),
				zap.Error(err))
		}
		c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
}

// HandleFrameWebhook ingests signed frame lifecycle events
func (h *handler) HandleFrameWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondBadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader("X-Warps-Signature")
	timestampHeader := c.GetHeader("X-Warps-Timestamp")
	timestamp, err := strconv.ParseInt(timestampHeader, 10, 64)
	if err != nil {
		respondUnauthorized(c, "Missing or malformed signature timestamp")
		return
	}

	now := h.clock.Now().Unix()
	if timestamp < now-webhookReplayWindow || timestamp > now+webhookReplayWindow {
		respondUnauthorized(c, "Signature timestamp outside the accepted window")
		return
	}

	var event webhook.FrameEvent
	if err := adapter.NewJSON().Unmarshal(body, &event); err != nil {
		respondBadRequest(c, "Malformed event payload")
		return
	}

	if !webhook.VerifySignature(h.config.WebhookSecret, timestamp, event.EventID, body, signature) {
		respondUnauthorized(c, "Invalid signature")
		return
	}

	switch event.EventType {
	case webhook.EventTypeFrameAdded, webhook.EventTypeNotificationsEnabled:
		if event.NotificationDetails == nil {
			respondValidationError(c, "notification details are required")
			return
		}
		err = h.store.SaveNotificationSubscription(c.Request.Context(), event.FID,
			event.NotificationDetails.URL, event.NotificationDetails.Token)

	case webhook.EventTypeFrameRemoved, webhook.EventTypeNotificationsDisabled:
		err = h.store.RemoveNotificationSubscriptions(c.Request.Context(), event.FID)

	default:
		respondValidationError(c, fmt.Sprintf("unknown event type %q", event.EventType))
		return
	}

	if err != nil {
		respondInternalError(c, err, "Failed to update notification subscriptions",
			zap.String("event_type", event.EventType),
			zap.Uint64("fid", event.FID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

// adminMintRequest is the privileged owner mint payload
type adminMintRequest struct {
	VerifiedAddress string `json:"verifiedAddress" binding:"required"`
	ThreadHash      string `json:"threadHash" binding:"required"`
}

// AdminMint performs the server-signed owner mint
func (h *handler) AdminMint(c *gin.Context) {
	var req adminMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	recipient, ok := h.parseAddress(c, req.VerifiedAddress)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	handle, err := h.gateway.SimulateAndSend(ctx,
		chain.OwnerMintRequest(h.signer.Address(), recipient), h.signer)
	if err != nil {
		h.respondSubmitError(c, err, "Failed to submit owner mint")
		return
	}

	// Confirmation outlives the request; the cast goes out only after the
	// mint settles
	go h.confirmAdminMint(context.WithoutCancel(ctx), handle, recipient, req.ThreadHash)

	c.JSON(http.StatusAccepted, gin.H{"tx_hash": handle.Hash.Hex()})
}

// confirmAdminMint waits for settlement and publishes the confirmation cast
func (h *handler) confirmAdminMint(ctx context.Context, handle *domain.TxHandle, recipient common.Address, threadHash string) {
	settled, err := h.tracker.AwaitSettlement(ctx, handle)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("txHash", handle.Hash.Hex()))
		return
	}
	if !settled.Success {
		logger.WarnCtx(ctx, "Owner mint failed",
			zap.String("txHash", handle.Hash.Hex()),
			zap.String("reason", string(settled.Reason)))
		return
	}

	text := fmt.Sprintf("Your warp is minted, %s. Welcome to the game!",
		domain.TruncateAddress(recipient.Hex()))
	if err := h.casts.PublishReply(ctx, threadHash, text, h.config.FrameURL); err != nil {
		logger.WarnCtx(ctx, "Failed to publish mint confirmation cast",
			zap.String("txHash", handle.Hash.Hex()),
			zap.Error(err))
	}
}

// loadedToken resolves a token id against the owner's cached inventory and
// responds on failure
func (h *handler) loadedToken(c *gin.Context, owner common.Address, tokenID uint64) (*domain.Token, error) {
	page, err := h.inventory.List(c.Request.Context(), owner)
	if err != nil {
		respondInternalError(c, err, "Failed to load inventory")
		return nil, err
	}

	for _, token := range page.Tokens {
		if token.ID == tokenID {
			return token, nil
		}
	}

	respondNotFound(c, fmt.Sprintf("Token %d is not in the loaded inventory", tokenID))
	return nil, domain.ErrTokenNotFound
}

// ownerParam parses the owner path parameter
func (h *handler) ownerParam(c *gin.Context) (common.Address, bool) {
	return h.parseAddress(c, c.Param("owner"))
}

// parseAddress validates a hex address or responds with a 400
func (h *handler) parseAddress(c *gin.Context, raw string) (common.Address, bool) {
	if !common.IsHexAddress(raw) {
		respondBadRequest(c, "Invalid address", raw)
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// respondSubmitError maps write-path failures to their status codes
func (h *handler) respondSubmitError(c *gin.Context, err error, message string) {
	switch {
	case isDomainConflict(err):
		respondConflict(c, err.Error())
	case isSimulationRevert(err):
		respondBadRequest(c, "Transaction would revert", err.Error())
	default:
		respondInternalError(c, err, message)
	}
}
