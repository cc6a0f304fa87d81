// 包 http 账本服务的 HTTP 接口层。
// 展示层只做参数绑定、错误码映射和展示策略，所有业务规则在领域层。
package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/banking/internal/ledger/application"
	"github.com/wyfcoding/banking/internal/ledger/domain"
	"github.com/wyfcoding/banking/pkg/metrics"
)

// LedgerHandler HTTP 处理器
type LedgerHandler struct {
	ledgerService *application.LedgerService
	metrics       *metrics.Metrics
	// 转账所需的最小注册账户数，来源系统在界面层的同款校验
	minAccountsForTransfer int
}

// NewLedgerHandler 创建 HTTP 处理器
func NewLedgerHandler(ledgerService *application.LedgerService, m *metrics.Metrics, minAccountsForTransfer int) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:          ledgerService,
		metrics:                m,
		minAccountsForTransfer: minAccountsForTransfer,
	}
}

// RegisterRoutes 注册路由
func (h *LedgerHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1")
	{
		api.POST("/accounts", h.CreateAccount)
		api.POST("/sessions", h.Login)
		api.DELETE("/sessions", h.Logout)
		api.GET("/accounts/me", h.GetAccount)
		api.GET("/accounts/me/transactions", h.GetTransactions)
		api.POST("/accounts/me/deposit", h.Deposit)
		api.POST("/accounts/me/withdraw", h.Withdraw)
		api.POST("/accounts/me/transfer", h.Transfer)
		api.POST("/accounts/me/topup", h.MobileTopUp)
	}
}

// CreateAccountRequest 开户请求
type CreateAccountRequest struct {
	AccountNumber  string `json:"account_number" binding:"required"`
	OwnerName      string `json:"owner_name" binding:"required"`
	Secret         string `json:"secret" binding:"required"`
	Class          string `json:"class" binding:"required"`
	OpeningBalance string `json:"opening_balance"`
}

// CreateAccount 开户
func (h *LedgerHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opening := decimal.Zero
	if req.OpeningBalance != "" {
		var err error
		opening, err = decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid opening_balance"})
			return
		}
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), application.CreateAccountCommand{
		AccountNumber:  req.AccountNumber,
		OwnerName:      req.OwnerName,
		Secret:         req.Secret,
		Class:          req.Class,
		OpeningBalance: opening,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.metrics.AccountsTotal.Inc()
	c.JSON(http.StatusCreated, account)
}

// LoginRequest 登录请求
type LoginRequest struct {
	AccountNumber string `json:"account_number" binding:"required"`
	Secret        string `json:"secret" binding:"required"`
}

// Login 登录，成功返回会话令牌
func (h *LedgerHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.ledgerService.Login(c.Request.Context(), application.LoginCommand{
		AccountNumber: req.AccountNumber,
		Secret:        req.Secret,
	})
	if err != nil {
		h.metrics.LoginsTotal.WithLabelValues("failed").Inc()
		h.renderError(c, err)
		return
	}

	h.metrics.LoginsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusCreated, session)
}

// Logout 注销会话，幂等
func (h *LedgerHandler) Logout(c *gin.Context) {
	h.ledgerService.Logout(c.Request.Context(), sessionToken(c))
	c.Status(http.StatusNoContent)
}

// GetAccount 获取会话账户
func (h *LedgerHandler) GetAccount(c *gin.Context) {
	account, err := h.ledgerService.GetAccount(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// GetTransactions 获取会话账户的交易历史
func (h *LedgerHandler) GetTransactions(c *gin.Context) {
	entries, err := h.ledgerService.GetTransactions(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": entries})
}

// AmountRequest 存取款请求
type AmountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// Deposit 存款
func (h *LedgerHandler) Deposit(c *gin.Context) {
	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}
	account, err := h.ledgerService.Deposit(c.Request.Context(), application.AmountCommand{
		Token:  sessionToken(c),
		Amount: amount,
	})
	h.renderOperation(c, "deposit", account, err)
}

// Withdraw 取款
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}
	account, err := h.ledgerService.Withdraw(c.Request.Context(), application.AmountCommand{
		Token:  sessionToken(c),
		Amount: amount,
	})
	h.renderOperation(c, "withdraw", account, err)
}

// TransferRequest 转账请求
type TransferRequest struct {
	TargetAccount string `json:"target_account" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
}

// Transfer 转账。注册账户不足两个时直接拒绝，与来源系统的界面策略一致。
func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	count, err := h.ledgerService.AccountCount(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	if count < h.minAccountsForTransfer {
		c.JSON(http.StatusConflict, gin.H{"error": "need at least 2 accounts"})
		return
	}

	account, err := h.ledgerService.Transfer(c.Request.Context(), application.TransferCommand{
		Token:         sessionToken(c),
		TargetAccount: req.TargetAccount,
		Amount:        amount,
	})
	h.renderOperation(c, "transfer", account, err)
}

// TopUpRequest 话费充值请求
type TopUpRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// MobileTopUp 话费充值
func (h *LedgerHandler) MobileTopUp(c *gin.Context) {
	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	account, err := h.ledgerService.MobileTopUp(c.Request.Context(), application.TopUpCommand{
		Token:       sessionToken(c),
		Amount:      amount,
		Destination: req.Destination,
	})
	h.renderOperation(c, "topup", account, err)
}

func (h *LedgerHandler) bindAmount(c *gin.Context) (decimal.Decimal, bool) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return decimal.Zero, false
	}
	return amount, true
}

func (h *LedgerHandler) renderOperation(c *gin.Context, kind string, account *application.AccountDTO, err error) {
	if err != nil {
		h.metrics.OperationsRejected.WithLabelValues(kind).Inc()
		h.renderError(c, err)
		return
	}
	h.metrics.OperationsTotal.WithLabelValues(kind).Inc()
	c.JSON(http.StatusOK, account)
}

// renderError 将领域错误映射为 HTTP 状态码
func (h *LedgerHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAuthenticationFailed),
		errors.Is(err, domain.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// sessionToken 从 Authorization: Bearer 头提取会话令牌
func sessionToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
