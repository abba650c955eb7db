// Package service アプリケーション内の常駐サービスに共通する生命周期を定義します。
package service

import (
	"context"
	"sync"
)

// Service 独立した実行単位として起動・停止されるサービスのインターフェースです。
//
// Start は即座に返り、実際の処理はゴルーチンで実行されます。サービスは
// serviceStopCtx の取り消しで終了し、終了完了を serviceStopWG に通知します。
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
