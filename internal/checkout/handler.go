package checkout

import (
	"errors"
	"net/http"
	"strconv"

	"tiffin/internal/auth"
	"tiffin/internal/delivery"
	"tiffin/internal/menu"
	"tiffin/internal/order"
	"tiffin/internal/pricing"
	"tiffin/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	sessions    *Store
	menuService *menu.Service
	schedule    *schedule.Service
	quotes      delivery.QuoteProvider
	orders      *order.Service
	authService *auth.Service
}

func NewHandler(
	sessions *Store,
	menuService *menu.Service,
	scheduleService *schedule.Service,
	quotes delivery.QuoteProvider,
	orders *order.Service,
	authService *auth.Service,
) *Handler {
	return &Handler{
		sessions:    sessions,
		menuService: menuService,
		schedule:    scheduleService,
		quotes:      quotes,
		orders:      orders,
		authService: authService,
	}
}

// --------------------------------------------------
// POST /checkout/sessions
// --------------------------------------------------
func (h *Handler) CreateSession(c *gin.Context) {
	session := h.sessions.Create()

	// A valid bearer token pre-populates the returning state.
	if customerID := c.GetString("customerID"); customerID != "" {
		profile, err := h.authService.ProfileByID(customerID)
		if err == nil {
			session.Authenticate(profile)
		}
	}

	c.JSON(http.StatusCreated, h.snapshot(session))
}

// --------------------------------------------------
// GET /checkout/sessions/:id
// --------------------------------------------------
func (h *Handler) GetSession(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, h.snapshot(session))
}

type selectionInput map[string]struct {
	Choice  string   `json:"choice,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

type addItemRequest struct {
	ItemID     string         `json:"item_id"`
	Quantity   int            `json:"quantity"`
	Selections selectionInput `json:"selections"`
}

// --------------------------------------------------
// POST /checkout/sessions/:id/items
// --------------------------------------------------
func (h *Handler) AddItem(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.menuService.GetItem(c.Request.Context(), req.ItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	sel, err := buildSelection(item, req.Selections)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lineItem, err := pricing.BuildLineItem(item, sel, req.Quantity)
	if err != nil {
		var ve *pricing.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve.Fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.AddLineItem(lineItem)
	c.JSON(http.StatusOK, h.snapshot(session))
}

// buildSelection replays the customer's picks through the pricing
// mutators in option order, so visibility clearing applies exactly as
// it would have interactively.
func buildSelection(item *menu.Item, input selectionInput) (pricing.Selection, error) {
	sel := pricing.NewSelection()

	for i := range item.Options {
		opt := &item.Options[i]
		picked, ok := input[opt.ID]
		if !ok {
			continue
		}

		if opt.Type == menu.SingleChoice {
			if picked.Choice == "" {
				continue
			}
			if err := pricing.ApplyChoice(item, sel, opt.ID, picked.Choice); err != nil {
				return nil, err
			}
			continue
		}

		for _, choiceID := range picked.Choices {
			if err := pricing.ToggleChoice(item, sel, opt.ID, choiceID); err != nil {
				return nil, err
			}
		}
	}

	return sel, nil
}

// --------------------------------------------------
// PATCH /checkout/sessions/:id/items/:index
// --------------------------------------------------
func (h *Handler) SetItemQuantity(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line item index"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := session.SetQuantity(index, req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.snapshot(session))
}

// --------------------------------------------------
// DELETE /checkout/sessions/:id/items/:index
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line item index"})
		return
	}

	if err := session.RemoveLineItem(index); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.snapshot(session))
}

// --------------------------------------------------
// PUT /checkout/sessions/:id/mode
// --------------------------------------------------
func (h *Handler) SetMode(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	mode, ok := schedule.ParseMode(req.Mode)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be collection or delivery"})
		return
	}

	session.SetMode(mode)

	// Slot list changes with the mode; snap the chosen slot back to
	// the head if it is no longer offered.
	slots, err := h.schedule.SlotsFor(c.Request.Context(), mode)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load slots"})
		return
	}
	slot := session.SnapSlot(slots)

	c.JSON(http.StatusOK, gin.H{
		"mode":  mode,
		"slot":  slot,
		"slots": schedule.Labels(slots),
	})
}

// --------------------------------------------------
// PUT /checkout/sessions/:id/slot
// --------------------------------------------------
func (h *Handler) SetSlot(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req struct {
		Slot string `json:"slot"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Slot == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	slots, err := h.schedule.SlotsFor(c.Request.Context(), session.Mode())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load slots"})
		return
	}

	session.SetSlot(req.Slot)
	slot := session.SnapSlot(slots)

	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

// --------------------------------------------------
// PUT /checkout/sessions/:id/account
// --------------------------------------------------
func (h *Handler) SetAccountType(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	accountType, ok := ParseAccountType(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown account type"})
		return
	}

	if err := session.SetAccountType(accountType); err != nil {
		var transition *StateTransitionError
		if errors.As(err, &transition) {
			c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_type": accountType})
}

// --------------------------------------------------
// PUT /checkout/sessions/:id/contact
// --------------------------------------------------
func (h *Handler) UpdateContact(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var details ContactDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session.UpdateContact(details)
	c.JSON(http.StatusOK, gin.H{"account_type": session.ActiveType()})
}

// --------------------------------------------------
// POST /checkout/sessions/:id/quote
// --------------------------------------------------
// Explicit "check delivery" action. The response is tagged with the
// postcode it was requested for and dropped if the postcode changed
// while the lookup was in flight.
func (h *Handler) RequestQuote(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	accountType, postcode := session.QuoteRequest()
	if postcode == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"postcode": "enter a postcode first"},
		})
		return
	}

	quote, err := h.quotes.Quote(c.Request.Context(), postcode, session.Subtotal())
	if err != nil {
		provErr := &ProviderError{Op: "delivery quote", Err: err}
		c.JSON(http.StatusBadGateway, gin.H{"error": provErr.Error()})
		return
	}

	if !session.ApplyQuote(accountType, postcode, quote) {
		c.JSON(http.StatusConflict, gin.H{"error": "postcode changed, check again"})
		return
	}

	c.JSON(http.StatusOK, quote)
}

type submitRequest struct {
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// --------------------------------------------------
// POST /checkout/sessions/:id/submit
// --------------------------------------------------
func (h *Handler) Submit(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session.AcceptTerms(req.TermsAccepted)

	payload, err := session.BuildOrderPayload(req.PaymentMethod, req.Notes)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}

	// A new-account submission opens the account before the order is
	// persisted, so the order can be attributed to it.
	if session.ActiveType() == AccountNew {
		contact := session.Contact(AccountNew)
		customer, err := h.authService.Register(auth.Registration{
			FirstName: contact.FirstName,
			LastName:  contact.LastName,
			Email:     contact.Email,
			Phone:     contact.Phone,
			Postcode:  contact.Postcode,
			Address:   contact.Address,
			Password:  contact.Password,
		})
		if err != nil {
			if errors.Is(err, auth.ErrEmailTaken) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"errors": gin.H{"email": "email already registered, sign in instead"},
				})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "account creation failed"})
			return
		}
		payload.CustomerID = customer.ID
	}

	orderID, err := h.orders.Submit(c.Request.Context(), payload)
	if err != nil {
		provErr := &ProviderError{Op: "order submission", Err: err}
		c.JSON(http.StatusBadGateway, gin.H{"error": provErr.Error()})
		return
	}

	session.ResetAfterSubmission()

	c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
}

func (h *Handler) respondSubmitError(c *gin.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve.Fields})
		return
	}
	if errors.Is(err, ErrDeliveryNotConfirmed) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *Handler) snapshot(s *Session) gin.H {
	return gin.H{
		"session_id":   s.ID,
		"mode":         s.Mode(),
		"slot":         s.Slot(),
		"account_type": s.ActiveType(),
		"items":        s.CartItems(),
		"subtotal":     s.Subtotal(),
	}
}
