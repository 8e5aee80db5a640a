package entity

import "errors"

// ErrorKind は外部データ取得失敗の種類です。
type ErrorKind string

const (
	// KindTransport はネットワークエラー、2xx以外のステータス、JSONでないレスポンスを表します。
	KindTransport ErrorKind = "transport"
	// KindNoData は期待したエンベロープキーがレスポンスに存在しないことを表します。
	KindNoData ErrorKind = "no_data"
)

// FetchError はすべてのゲートウェイ操作で共通の失敗値です。
type FetchError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"error"`
}

func (e *FetchError) Error() string {
	return e.Message
}

// NewTransportError は下位エラーのメッセージを保持した transport 失敗を返します。
func NewTransportError(err error) *FetchError {
	return &FetchError{Kind: KindTransport, Message: err.Error()}
}

// NewNoDataError は no_data 失敗を返します。
func NewNoDataError(message string) *FetchError {
	return &FetchError{Kind: KindNoData, Message: message}
}

// AsFetchError は err チェーンから FetchError を取り出します。
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsNoData は err が no_data 失敗かどうかを返します。
func IsNoData(err error) bool {
	fe, ok := AsFetchError(err)
	return ok && fe.Kind == KindNoData
}
