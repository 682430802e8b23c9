package model

type RecognitionState string

const (
	RecognitionScanning    RecognitionState = "scanning"
	RecognitionRecognized  RecognitionState = "recognized"
	RecognitionNewCustomer RecognitionState = "new_customer"
)

// GET /api/recognition_status のレスポンス
type RecognitionStatus struct {
	Status     RecognitionState `json:"status"`
	CustomerID string           `json:"customer_id,omitempty"`
	SessionID  string           `json:"session_id,omitempty"`
}

// 顧客IDが無い recognized / new_customer や waiting などは scanning 扱い。
func (s RecognitionStatus) Normalize() RecognitionStatus {
	switch s.Status {
	case RecognitionRecognized, RecognitionNewCustomer:
		if s.CustomerID != "" {
			return RecognitionStatus{Status: s.Status, CustomerID: s.CustomerID, SessionID: s.SessionID}
		}
	}
	return RecognitionStatus{Status: RecognitionScanning}
}

func (s RecognitionStatus) Identified() bool {
	n := s.Normalize()
	return n.Status != RecognitionScanning
}
