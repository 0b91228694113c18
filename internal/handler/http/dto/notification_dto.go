package dto

type BroadcastRequest struct {
	Content string `json:"content" binding:"required,notblank,max=2000"`
}

type ClearHistoryRequest struct {
	BroadcastIDs []string `json:"broadcast_ids" binding:"required,min=1,dive,required"`
}

type ClearHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}
