package application

// LedgerService 应用层门面，聚合读写服务供接口层使用。
type LedgerService struct {
	*LedgerCommandService
	*LedgerQueryService
}

// NewLedgerService 创建应用服务门面
func NewLedgerService(command *LedgerCommandService, query *LedgerQueryService) *LedgerService {
	return &LedgerService{
		LedgerCommandService: command,
		LedgerQueryService:   query,
	}
}
