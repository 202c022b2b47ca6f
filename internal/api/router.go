package api

import (
	"fmt"
	"net/http"
	"strconv"

	"video-poker-service/internal/game/cards"
	"video-poker-service/internal/game/strategy"
	"video-poker-service/internal/game/variant"
	"video-poker-service/internal/middleware"
	"video-poker-service/internal/service"
	"video-poker-service/internal/service/player"
	"video-poker-service/internal/service/showdown"
	"video-poker-service/internal/service/videopoker"
	"video-poker-service/internal/ws"
	"video-poker-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Container
}

func RegisterRoutes(r *gin.Engine, services *service.Container) {
	handler := &Handler{services: services}
	wsHandler := ws.NewHandler(services.VideoPoker)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/guest", handler.GuestLogin)

		v1.GET("/variants", handler.ListVariants)
		v1.POST("/evaluate", handler.Evaluate)
		v1.POST("/strategy", handler.Strategy)
		v1.POST("/showdown", handler.ResolveShowdown)
		v1.GET("/showdown/:id", handler.GetShowdown)

		playerGroup := v1.Group("/")
		playerGroup.Use(middleware.AuthRequired(services.Auth))
		{
			playerGroup.POST("/rounds", handler.Deal)
			playerGroup.GET("/rounds/:id", handler.GetRound)
			playerGroup.POST("/rounds/:id/draw", handler.Draw)
			playerGroup.GET("/wallet", handler.GetWallet)
			playerGroup.GET("/stats", handler.Stats)
			playerGroup.GET("/profile", handler.GetProfile)
			playerGroup.PUT("/profile", handler.UpdateProfile)
		}
	}

	adminGroup := r.Group("/admin")
	{
		adminGroup.POST("/auth/login", handler.AdminLogin)

		authed := adminGroup.Group("/")
		authed.Use(middleware.AdminAuthRequired(services.Admin))
		{
			authed.GET("/players", handler.AdminListPlayers)
			authed.PUT("/players/:id/status", handler.AdminUpdatePlayerStatus)
			authed.PUT("/players/:id/credits", handler.AdminGrantCredits)
		}
	}

	r.GET("/ws/strategy", wsHandler.HandleStrategyWS)
}

type guestBody struct {
	Nickname string `json:"nickname"`
}

type evaluateBody struct {
	Variant string `json:"variant"`
	Wager   int    `json:"wager"`
	Hand    string `json:"hand" binding:"required"`
}

type strategyBody struct {
	Variant   string `json:"variant"`
	Wager     int    `json:"wager"`
	Hand      string `json:"hand" binding:"required"`
	Remaining string `json:"remaining"`
	Top       int    `json:"top" binding:"min=0,max=32"`
}

type showdownBody struct {
	Seats []struct {
		Name string `json:"name"`
		Hand string `json:"hand" binding:"required"`
	} `json:"seats" binding:"required,dive"`
}

type dealBody struct {
	Variant string `json:"variant"`
	Wager   int    `json:"wager" binding:"required,min=1,max=5"`
}

type drawBody struct {
	// Hold lists the hand positions (0..4) to keep; empty discards all.
	Hold []int `json:"hold"`
}

type profileBody struct {
	Nickname string `json:"nickname" binding:"required"`
}

type adminLoginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type playerStatusBody struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type grantCreditsBody struct {
	Amount int64 `json:"amount" binding:"required"`
}

type paytableRow struct {
	Category variant.Category      `json:"category"`
	Name     string                `json:"name"`
	Pays     [variant.MaxWager]int `json:"pays"`
}

type variantView struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	JokerCount int           `json:"jokerCount"`
	Wild       string        `json:"wild"`
	Paytable   []paytableRow `json:"paytable"`
}

func newVariantView(v *variant.Variant) variantView {
	view := variantView{
		ID:         v.ID,
		Name:       v.Name,
		JokerCount: v.JokerCount,
		Wild:       v.Wild.String(),
	}
	seen := map[variant.Category]bool{}
	for _, cat := range v.Categories() {
		if seen[cat] {
			continue
		}
		seen[cat] = true
		row := paytableRow{Category: cat, Name: cat.String()}
		for w := variant.MinWager; w <= variant.MaxWager; w++ {
			row.Pays[w-1], _ = v.Payout(cat, w)
		}
		view.Paytable = append(view.Paytable, row)
	}
	return view
}

func wagerOrDefault(w int) int {
	if w == 0 {
		return variant.MinWager
	}
	return w
}

func (h *Handler) GuestLogin(c *gin.Context) {
	var body guestBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	resp, err := h.services.Auth.Guest(c.Request.Context(), body.Nickname)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, resp)
}

func (h *Handler) ListVariants(c *gin.Context) {
	all := variant.All()
	views := make([]variantView, 0, len(all))
	for _, v := range all {
		views = append(views, newVariantView(v))
	}
	response.Success(c, gin.H{"items": views, "total": len(views)})
}

func (h *Handler) Evaluate(c *gin.Context) {
	var body evaluateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	hand, err := cards.ParseHand(body.Hand)
	if err != nil {
		response.Fail(c, err)
		return
	}

	res, err := h.services.VideoPoker.Evaluate(body.Variant, wagerOrDefault(body.Wager), hand)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) Strategy(c *gin.Context) {
	var body strategyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	in, err := body.toInput()
	if err != nil {
		response.Fail(c, err)
		return
	}

	res, err := h.services.VideoPoker.Strategy(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if body.Top > 0 && body.Top < len(res.Outcomes) {
		res.Outcomes = res.Outcomes[:body.Top]
	}
	response.Success(c, res)
}

func (b strategyBody) toInput() (videopoker.StrategyInput, error) {
	return videopoker.ParseStrategyInput(b.Variant, b.Wager, b.Hand, b.Remaining)
}

func (h *Handler) ResolveShowdown(c *gin.Context) {
	var body showdownBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	seats := make([]showdown.Seat, len(body.Seats))
	for i, s := range body.Seats {
		hand, err := cards.ParseHand(s.Hand)
		if err != nil {
			response.Error(c, http.StatusBadRequest, fmt.Sprintf("seat %d: %v", i, err))
			return
		}
		seats[i] = showdown.Seat{Name: s.Name, Hand: hand}
	}

	res, err := h.services.Showdown.Resolve(c.Request.Context(), seats)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) GetShowdown(c *gin.Context) {
	res, err := h.services.Showdown.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) Deal(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body dealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.services.VideoPoker.Deal(c.Request.Context(), playerID, body.Variant, body.Wager)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) GetRound(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	round, err := h.services.VideoPoker.GetRound(c.Request.Context(), playerID, c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, round)
}

func (h *Handler) Draw(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body drawBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	mask, err := strategy.MaskFromPositions(body.Hold)
	if err != nil {
		response.Fail(c, err)
		return
	}

	res, err := h.services.VideoPoker.Draw(c.Request.Context(), playerID, c.Param("id"), mask)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) GetWallet(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	w, err := h.services.Wallet.GetWallet(c.Request.Context(), playerID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, w)
}

func (h *Handler) Stats(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	sum, err := h.services.Stats.Summary(c.Request.Context(), playerID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, sum)
}

func (h *Handler) GetProfile(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	prof, err := h.services.Player.GetProfile(c.Request.Context(), playerID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, prof)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body profileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	prof, err := h.services.Player.UpdateNickname(c.Request.Context(), playerID, body.Nickname)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, prof)
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var body adminLoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.services.Admin.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, resp)
}

func (h *Handler) AdminListPlayers(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	res, err := h.services.Player.AdminListPlayers(c.Request.Context(), player.ListFilter{
		Page:    page,
		Size:    size,
		Status:  c.Query("status"),
		Keyword: c.Query("keyword"),
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) AdminUpdatePlayerStatus(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid player id")
		return
	}
	var body playerStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.services.Player.AdminUpdatePlayerStatus(c.Request.Context(), playerID, body.Status, body.Reason)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, p)
}

func (h *Handler) AdminGrantCredits(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid player id")
		return
	}
	var body grantCreditsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	w, err := h.services.Player.AdminGrantCredits(c.Request.Context(), c.GetInt64(middleware.ContextAdminIDKey), playerID, body.Amount)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, w)
}

func getPlayerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(middleware.ContextPlayerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
