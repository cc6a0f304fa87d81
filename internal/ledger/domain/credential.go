package domain

// SecretHasher 凭证哈希能力。领域层只依赖该接口，
// 具体算法（bcrypt）由 infrastructure/security 提供。
type SecretHasher interface {
	// Hash 对明文凭证生成哈希
	Hash(secret string) (string, error)
	// Compare 校验明文凭证与哈希是否匹配，不匹配时返回错误
	Compare(hash, secret string) error
}
