// 包 security 凭证哈希的 bcrypt 实现。
package security

import "golang.org/x/crypto/bcrypt"

// BcryptHasher 实现 domain.SecretHasher。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher 创建哈希器；cost <= 0 时使用 bcrypt.DefaultCost。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash 生成加盐哈希。
func (h *BcryptHasher) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare 校验明文与哈希。
func (h *BcryptHasher) Compare(hash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}
