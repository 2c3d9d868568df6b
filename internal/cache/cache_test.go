package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock はテストから時刻を進められる時刻ソース
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestKey_OrderIndependent(t *testing.T) {
	type paramsA struct {
		UserID string `json:"user_id"`
		Status string `json:"status"`
	}

	k1, err := Key("listWords", paramsA{UserID: "u1", Status: "REVIEW"})
	require.NoError(t, err)

	// フィールドの並びが違っても等価なパラメータは同じキーになる
	k2, err := Key("listWords", map[string]interface{}{"status": "REVIEW", "user_id": "u1"})
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	// ネストしたオブジェクトのキー順にも依存しない
	k3, err := Key("op", map[string]interface{}{"b": map[string]interface{}{"y": 2, "x": 1}, "a": 1})
	require.NoError(t, err)
	k4, err := Key("op", map[string]interface{}{"a": 1, "b": map[string]interface{}{"x": 1, "y": 2}})
	require.NoError(t, err)
	assert.Equal(t, k3, k4)

	// 操作名が違えば別キー
	k5, err := Key("otherOp", paramsA{UserID: "u1", Status: "REVIEW"})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k5)
}

func TestQueryCache_HitAndMiss(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(5*time.Minute, 10, WithClock(clock.Now))

	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "payload", nil
	}

	got, err := c.Get(ctx, "op", map[string]interface{}{"id": 1}, fetch)
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// 2回目はキャッシュヒットで上流を呼ばない
	got, err = c.Get(ctx, "op", map[string]interface{}{"id": 1}, fetch)
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// パラメータが違えば別フェッチ
	_, err = c.Get(ctx, "op", map[string]interface{}{"id": 2}, fetch)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestQueryCache_TTL(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(5*time.Minute, 10, WithClock(clock.Now))

	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		return fmt.Sprintf("v%d", atomic.AddInt32(&calls, 1)), nil
	}

	got, err := c.Get(ctx, "op", nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	// 299秒後: まだ有効
	clock.Advance(299 * time.Second)
	got, err = c.Get(ctx, "op", nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// さらに2秒後 (計301秒): 失効扱いで再フェッチ
	clock.Advance(2 * time.Second)
	got, err = c.Get(ctx, "op", nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

// 同一キーへのN並行リクエストが上流フェッチ1回に集約されることを検証する
func TestQueryCache_Deduplication(t *testing.T) {
	ctx := context.Background()
	c := New(5*time.Minute, 10)

	const n = 20
	var calls int32
	gate := make(chan struct{}) // フェッチを待たせて全員を in-flight に乗せる

	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-gate
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]interface{}, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// キー順の違う等価パラメータも同じ in-flight を共有する
			var params interface{}
			if i%2 == 0 {
				params = map[string]interface{}{"a": 1, "b": 2}
			} else {
				params = map[string]interface{}{"b": 2, "a": 1}
			}
			results[i], errs[i] = c.Get(ctx, "op", params, fetch)
		}(i)
	}

	// 全ゴルーチンが Get に入るのを待ってからフェッチを解放
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, time.Millisecond)
	close(gate)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "上流フェッチはちょうど1回")
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestQueryCache_ErrorPropagation(t *testing.T) {
	ctx := context.Background()
	c := New(5*time.Minute, 10)

	wantErr := errors.New("upstream failed")
	var calls int32
	failing := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, wantErr
	}

	_, err := c.Get(ctx, "op", nil, failing)
	assert.ErrorIs(t, err, wantErr)
	// ネガティブキャッシュはしない: エントリは消えている
	assert.Equal(t, 0, c.Len())

	// 次のアクセスは新規フェッチでリトライできる
	got, err := c.Get(ctx, "op", nil, func(ctx context.Context) (interface{}, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

// capacity+1 個の異なるキーを入れると、挿入順ではなく lastAccessed が
// 最古のエントリだけが破棄されることを検証する
func TestQueryCache_LRUEviction(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(time.Hour, 3, WithClock(clock.Now))

	fetchVal := func(v string) FetchFunc {
		return func(ctx context.Context) (interface{}, error) { return v, nil }
	}

	// k1, k2, k3 の順に挿入 (それぞれ1秒ずつ時刻を進める)
	for i, key := range []string{"k1", "k2", "k3"} {
		_, err := c.Get(ctx, key, nil, fetchVal(fmt.Sprintf("v%d", i+1)))
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	// k1 に再アクセスして lastAccessed を更新 → 最古は k2 になる
	_, err := c.Get(ctx, "k1", nil, fetchVal("never"))
	require.NoError(t, err)
	clock.Advance(time.Second)

	// 4つ目のキーで上限超過 → k2 だけが破棄される
	_, err = c.Get(ctx, "k4", nil, fetchVal("v4"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	// 生き残りを先に確認する (ここで再挿入を起こすと連鎖破棄するため k2 は最後)
	var refetched []string
	track := func(key string) FetchFunc {
		return func(ctx context.Context) (interface{}, error) {
			refetched = append(refetched, key)
			return "refetched", nil
		}
	}
	for _, key := range []string{"k1", "k3", "k4"} {
		_, err := c.Get(ctx, key, nil, track(key))
		require.NoError(t, err)
	}
	assert.Empty(t, refetched, "k1/k3/k4 はヒットする")

	_, err = c.Get(ctx, "k2", nil, track("k2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"k2"}, refetched, "破棄されたのは挿入が最古の k1 ではなく lastAccessed が最古の k2")
}

func TestQueryCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := New(time.Hour, 10)

	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	_, err := c.Get(ctx, "vocabBook", map[string]interface{}{"user": "u1"}, fetch)
	require.NoError(t, err)
	_, err = c.Get(ctx, "vocabBook", map[string]interface{}{"user": "u2"}, fetch)
	require.NoError(t, err)
	_, err = c.Get(ctx, "stats", map[string]interface{}{"user": "u1"}, fetch)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	c.Invalidate("vocabBook", map[string]interface{}{"user": "u1"})
	assert.Equal(t, 2, c.Len())

	c.InvalidateOperation("vocabBook")
	assert.Equal(t, 1, c.Len())

	// stats は残っている
	got, err := c.Get(ctx, "stats", map[string]interface{}{"user": "u1"}, fetch)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got)
}
