package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wyfcoding/banking/internal/ledger/domain"
)

// Session 已认证会话。会话由调用方显式持有并随请求传入，
// 进程内不存在"当前登录用户"这类全局状态，多个会话可以同时存在。
type Session struct {
	Token         string    `json:"token"`
	AccountNumber string    `json:"account_number"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// IsExpired 会话是否已过期。
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionManager 进程内会话表。
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewSessionManager 创建会话表；ttl <= 0 时默认 30 分钟。
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create 为账户建立新会话并返回。
func (m *SessionManager) Create(accountNumber string) *Session {
	now := time.Now()
	s := &Session{
		Token:         uuid.NewString(),
		AccountNumber: accountNumber,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.ttl),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return s
}

// Resolve 按令牌取会话对应的账号。令牌未知或已过期返回 ErrSessionExpired，
// 过期会话顺带清除。
func (m *SessionManager) Resolve(token string) (string, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return "", domain.ErrSessionExpired
	}
	if s.IsExpired() {
		m.Delete(token)
		return "", domain.ErrSessionExpired
	}
	return s.AccountNumber, nil
}

// Delete 注销会话，幂等：令牌不存在时同样静默返回。
func (m *SessionManager) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
