package response

import (
	"context"
	"errors"
	"net/http"

	appErr "video-poker-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Body struct {
	Code int    `json:"code"`
	Data any    `json:"data"`
	Msg  string `json:"msg"`
}

func Success(c *gin.Context, data any) {
	JSON(c, http.StatusOK, data, "")
}

func SuccessWithMsg(c *gin.Context, data any, msg string) {
	JSON(c, http.StatusOK, data, msg)
}

func Error(c *gin.Context, status int, msg string) {
	JSON(c, status, gin.H{}, msg)
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Body{Code: status, Data: gin.H{}, Msg: msg})
}

// Fail maps a service error onto its HTTP status.
func Fail(c *gin.Context, err error) {
	Error(c, StatusOf(err), err.Error())
}

var statusByErr = []struct {
	err    error
	status int
}{
	{appErr.ErrUnauthorized, http.StatusUnauthorized},
	{appErr.ErrAdminNotFound, http.StatusUnauthorized},
	{appErr.ErrInvalidAdminPassword, http.StatusUnauthorized},
	{appErr.ErrAdminDisabled, http.StatusForbidden},
	{appErr.ErrRoundNotFound, http.StatusNotFound},
	{appErr.ErrPlayerNotFound, http.StatusNotFound},
	{appErr.ErrShowdownNotFound, http.StatusNotFound},
	{appErr.ErrRoundSettled, http.StatusConflict},
	{appErr.ErrInsufficientCredits, http.StatusPaymentRequired},
	{appErr.ErrUnknownVariant, http.StatusBadRequest},
	{appErr.ErrInvalidCard, http.StatusBadRequest},
	{appErr.ErrInvalidHand, http.StatusBadRequest},
	{appErr.ErrDuplicateCard, http.StatusBadRequest},
	{appErr.ErrDeckTooSmall, http.StatusBadRequest},
	{appErr.ErrInvalidJokerCount, http.StatusBadRequest},
	{appErr.ErrWildNotAllowed, http.StatusBadRequest},
	{appErr.ErrInvalidWager, http.StatusBadRequest},
	{appErr.ErrUnknownCategory, http.StatusBadRequest},
	{appErr.ErrInvalidHoldMask, http.StatusBadRequest},
	{appErr.ErrNotEnoughPlayers, http.StatusBadRequest},
	{appErr.ErrTooManyPlayers, http.StatusBadRequest},
	{appErr.ErrInvalidPlayerStatus, http.StatusBadRequest},
	{appErr.ErrInvalidNickname, http.StatusBadRequest},
	{appErr.ErrInvalidAmount, http.StatusBadRequest},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

// StatusOf returns the HTTP status for err, 500 for anything unrecognised.
func StatusOf(err error) int {
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func JSON(c *gin.Context, status int, data any, msg string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, Body{
		Code: status,
		Data: data,
		Msg:  msg,
	})
}
