package handler

import (
	"context"
	"net/http"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/logger"
	"github.com/osse101/Farmstead_Go/internal/session"
)

// FarmService is the session API the farm handlers drive
type FarmService interface {
	Create(ctx context.Context, difficulty domain.Difficulty) (*domain.FarmState, error)
	Snapshot(ctx context.Context, id string) (*domain.FarmState, error)
	Delete(ctx context.Context, id string) error
	Till(ctx context.Context, id string, plot int) (*session.Outcome, error)
	Water(ctx context.Context, id string, plot int) (*session.Outcome, error)
	Plant(ctx context.Context, id string, plot int, crop domain.CropID) (*session.Outcome, error)
	Harvest(ctx context.Context, id string, plot int) (*session.Outcome, error)
	BuyAnimal(ctx context.Context, id string, slot int, animal domain.AnimalID) (*session.Outcome, error)
	Feed(ctx context.Context, id string, slot int) (*session.Outcome, error)
	Collect(ctx context.Context, id string, slot int) (*session.Outcome, error)
	Sell(ctx context.Context, id string, good domain.GoodID, quantity int) (*session.Outcome, error)
	SmartSell(ctx context.Context, id string) (*session.Outcome, error)
	BuyUpgrade(ctx context.Context, id string, key domain.UpgradeKey) (*session.Outcome, error)
	Advance(ctx context.Context, id string, ticks int) (*session.AdvanceOutcome, error)
}

// CreateFarmRequest starts a new farm. An empty difficulty uses the server default.
type CreateFarmRequest struct {
	Difficulty string `json:"difficulty" validate:"omitempty,difficulty"`
}

// PlantRequest sows a crop on a watered plot
type PlantRequest struct {
	Crop string `json:"crop" validate:"required,crop"`
}

// BuyAnimalRequest buys an animal into an empty barn slot
type BuyAnimalRequest struct {
	Animal string `json:"animal" validate:"required,animal"`
}

// SellRequest sells part of the inventory
type SellRequest struct {
	Good     string `json:"good" validate:"required,good"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

// UpgradeRequest buys the next level of an upgrade
type UpgradeRequest struct {
	Upgrade string `json:"upgrade" validate:"required,upgrade"`
}

// AdvanceRequest applies ticks to a farm right away
type AdvanceRequest struct {
	Ticks int `json:"ticks" validate:"min=1,max=100000"`
}

// FarmHandler serves the farm session API
type FarmHandler struct {
	svc FarmService
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(svc FarmService) *FarmHandler {
	return &FarmHandler{svc: svc}
}

// HandleCreate starts a new farm session
// POST /api/v1/farms
func (h *FarmHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateFarmRequest
	if err := DecodeOptionalRequest(r, w, &req, "Create farm"); err != nil {
		return
	}

	state, err := h.svc.Create(r.Context(), domain.Difficulty(req.Difficulty))
	if err != nil {
		respondServiceError(w, r, "create", err)
		return
	}

	logger.FromContext(logger.WithFarmID(r.Context(), state.ID)).Info(LogMsgFarmCreated, "difficulty", state.Difficulty)
	respondJSON(w, http.StatusCreated, state)
}

// HandleGet returns the farm snapshot
// GET /api/v1/farms/{id}
func (h *FarmHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.Snapshot(r.Context(), farmID(r))
	if err != nil {
		respondServiceError(w, r, "snapshot", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleDelete ends a farm session and removes its stored state
// DELETE /api/v1/farms/{id}
func (h *FarmHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := farmID(r)
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, "delete", err)
		return
	}

	logger.FromContext(logger.WithFarmID(r.Context(), id)).Info(LogMsgFarmDeleted)
	w.WriteHeader(http.StatusNoContent)
}

// HandleTill tills a plot
// POST /api/v1/farms/{id}/plots/{plot}/till
func (h *FarmHandler) HandleTill(w http.ResponseWriter, r *http.Request) {
	h.plotAction(w, r, "till", h.svc.Till)
}

// HandleWater waters a plot
// POST /api/v1/farms/{id}/plots/{plot}/water
func (h *FarmHandler) HandleWater(w http.ResponseWriter, r *http.Request) {
	h.plotAction(w, r, "water", h.svc.Water)
}

// HandleHarvest harvests a ripe plot
// POST /api/v1/farms/{id}/plots/{plot}/harvest
func (h *FarmHandler) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	h.plotAction(w, r, "harvest", h.svc.Harvest)
}

// HandlePlant plants a crop
// POST /api/v1/farms/{id}/plots/{plot}/plant
func (h *FarmHandler) HandlePlant(w http.ResponseWriter, r *http.Request) {
	plot, ok := pathIndex(r, w, ParamPlotIndex)
	if !ok {
		return
	}
	var req PlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant"); err != nil {
		return
	}

	out, err := h.svc.Plant(r.Context(), farmID(r), plot, domain.CropID(req.Crop))
	h.respondOutcome(w, r, "plant", out, err)
}

// HandleBuyAnimal buys an animal into a barn slot
// POST /api/v1/farms/{id}/barn/{slot}/buy
func (h *FarmHandler) HandleBuyAnimal(w http.ResponseWriter, r *http.Request) {
	slot, ok := pathIndex(r, w, ParamSlotIndex)
	if !ok {
		return
	}
	var req BuyAnimalRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy animal"); err != nil {
		return
	}

	out, err := h.svc.BuyAnimal(r.Context(), farmID(r), slot, domain.AnimalID(req.Animal))
	h.respondOutcome(w, r, "buy_animal", out, err)
}

// HandleFeed feeds a hungry animal
// POST /api/v1/farms/{id}/barn/{slot}/feed
func (h *FarmHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "feed", h.svc.Feed)
}

// HandleCollect collects a ready product
// POST /api/v1/farms/{id}/barn/{slot}/collect
func (h *FarmHandler) HandleCollect(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "collect", h.svc.Collect)
}

// HandleSell sells goods from the inventory
// POST /api/v1/farms/{id}/sell
func (h *FarmHandler) HandleSell(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell"); err != nil {
		return
	}
	LogRequestFields(logger.FromContext(r.Context()), "good", req.Good, "quantity", req.Quantity)

	out, err := h.svc.Sell(r.Context(), farmID(r), domain.GoodID(req.Good), req.Quantity)
	h.respondOutcome(w, r, "sell", out, err)
}

// HandleSmartSell sells everything beyond the feed reserve
// POST /api/v1/farms/{id}/smart-sell
func (h *FarmHandler) HandleSmartSell(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.SmartSell(r.Context(), farmID(r))
	h.respondOutcome(w, r, "smart_sell", out, err)
}

// HandleBuyUpgrade purchases an upgrade level
// POST /api/v1/farms/{id}/upgrades
func (h *FarmHandler) HandleBuyUpgrade(w http.ResponseWriter, r *http.Request) {
	var req UpgradeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy upgrade"); err != nil {
		return
	}

	out, err := h.svc.BuyUpgrade(r.Context(), farmID(r), domain.UpgradeKey(req.Upgrade))
	h.respondOutcome(w, r, "buy_upgrade", out, err)
}

// HandleAdvance runs ticks against one farm immediately
// POST /api/v1/farms/{id}/advance
func (h *FarmHandler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Advance"); err != nil {
		return
	}

	out, err := h.svc.Advance(r.Context(), farmID(r), req.Ticks)
	if err != nil {
		respondServiceError(w, r, "advance", err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

type indexedAction func(ctx context.Context, id string, index int) (*session.Outcome, error)

func (h *FarmHandler) plotAction(w http.ResponseWriter, r *http.Request, opName string, action indexedAction) {
	h.indexed(w, r, ParamPlotIndex, opName, action)
}

func (h *FarmHandler) slotAction(w http.ResponseWriter, r *http.Request, opName string, action indexedAction) {
	h.indexed(w, r, ParamSlotIndex, opName, action)
}

func (h *FarmHandler) indexed(w http.ResponseWriter, r *http.Request, param, opName string, action indexedAction) {
	idx, ok := pathIndex(r, w, param)
	if !ok {
		return
	}
	out, err := action(r.Context(), farmID(r), idx)
	h.respondOutcome(w, r, opName, out, err)
}

func (h *FarmHandler) respondOutcome(w http.ResponseWriter, r *http.Request, opName string, out *session.Outcome, err error) {
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}
