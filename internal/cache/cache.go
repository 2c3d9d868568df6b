// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// デフォルト設定。コンストラクタでゼロ値が渡された場合に使う。
const (
	DefaultTTL      = 5 * time.Minute
	DefaultCapacity = 256
)

// FetchFunc はキャッシュミス時に上流からデータを取得する関数です。
type FetchFunc func(ctx context.Context) (interface{}, error)

// inflight は実行中のフェッチ1件を表します。同一キーへの同時リクエストは
// 全員がこの1件を待ち、上流呼び出しを1回に集約する。
type inflight struct {
	done chan struct{}
	val  interface{}
	err  error
}

// entry はキャッシュエントリです。payload はフェッチ完了までゼロ値のまま。
type entry struct {
	payload      interface{}
	fetchedAt    time.Time
	lastAccessed time.Time
	pending      *inflight // 実行中フェッチ。nil なら確定済み
}

// QueryCache は読み取りクエリ用のリードスルーキャッシュです。
// TTL失効・LRU破棄・実行中フェッチの集約 (request de-duplication) を行う。
//
// プロセスローカルのベストエフォート層であり、正しさはキャッシュに依存しては
// ならない (ミスも未失効の古い読みも常に正当なシステム状態)。グローバルな
// シングルトンにはせず、サービス起動時に明示的に構築して注入する。
type QueryCache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	ttl      time.Duration
	capacity int
	nowFn    func() time.Time // テストで差し替え可能な時刻ソース
}

// Option は QueryCache の構築オプションです。
type Option func(*QueryCache)

// WithClock は時刻ソースを差し替えます (テスト用)。
func WithClock(nowFn func() time.Time) Option {
	return func(c *QueryCache) {
		c.nowFn = nowFn
	}
}

// New は QueryCache を生成します。ttl・capacity が0以下ならデフォルト値を使う。
func New(ttl time.Duration, capacity int, opts ...Option) *QueryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &QueryCache{
		entries:  make(map[string]*entry),
		ttl:      ttl,
		capacity: capacity,
		nowFn:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key は (操作名, パラメータ) から決定的なキャッシュキーを作ります。
// JSONのオブジェクトキーを再帰的にソートするため、パラメータの指定順が
// 違っても等価な呼び出しは同じエントリに当たる。
func Key(operation string, params interface{}) (string, error) {
	canonical, err := canonicalJSON(params)
	if err != nil {
		return "", fmt.Errorf("cache.Key: %w", err)
	}
	return operation + ":" + canonical, nil
}

// Get はリードスルー取得を行います。
//
//   - 未失効ヒット: lastAccessed を更新してペイロードを返す
//   - 実行中フェッチあり: その完了を待って同じ結果を共有する
//   - ミス/失効: 実行中フェッチを即座に登録してから上流を呼び、成功なら
//     エントリを置き換え、失敗ならエントリを丸ごと消して全待機者へ伝播する
//     (ネガティブキャッシュはしない)
func (c *QueryCache) Get(ctx context.Context, operation string, params interface{}, fetch FetchFunc) (interface{}, error) {
	key, err := Key(operation, params)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	now := c.nowFn()

	if e, ok := c.entries[key]; ok {
		if e.pending != nil {
			fl := e.pending
			c.mu.Unlock()
			<-fl.done
			return fl.val, fl.err
		}
		if now.Sub(e.fetchedAt) <= c.ttl {
			e.lastAccessed = now
			payload := e.payload
			c.mu.Unlock()
			return payload, nil
		}
		// 失効。エントリ自体は残し、このアクセスで取り直す
		fl := &inflight{done: make(chan struct{})}
		e.pending = fl
		c.mu.Unlock()
		return c.resolve(ctx, key, fl, fetch)
	}

	// 新規キー。挿入前にサイズ上限を確認する
	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	fl := &inflight{done: make(chan struct{})}
	c.entries[key] = &entry{pending: fl, lastAccessed: now}
	c.mu.Unlock()
	return c.resolve(ctx, key, fl, fetch)
}

// resolve は上流フェッチを実行し、結果をエントリと待機者全員に反映します。
func (c *QueryCache) resolve(ctx context.Context, key string, fl *inflight, fetch FetchFunc) (interface{}, error) {
	val, err := fetch(ctx)

	c.mu.Lock()
	if err != nil {
		// 汚染されたエントリを消して、次回アクセスで新規フェッチさせる
		delete(c.entries, key)
	} else if e, ok := c.entries[key]; ok && e.pending == fl {
		now := c.nowFn()
		e.payload = val
		e.fetchedAt = now
		e.lastAccessed = now
		e.pending = nil
	}
	c.mu.Unlock()

	fl.val = val
	fl.err = err
	close(fl.done)
	return val, err
}

// evictOldest は lastAccessed が最古の1件を破棄します。呼び出し側でロック保持。
// 実行中フェッチを持つエントリは破棄しない (待機者の結果共有を壊さないため)。
func (c *QueryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if e.pending != nil {
			continue
		}
		if oldestKey == "" || e.lastAccessed.Before(oldest) {
			oldestKey = k
			oldest = e.lastAccessed
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Invalidate は指定のキーを即時に破棄します。進捗更新の直後に呼び、
// 古い読みがスケジューリング判断に混入しないようにする。
func (c *QueryCache) Invalidate(operation string, params interface{}) {
	key, err := Key(operation, params)
	if err != nil {
		return
	}
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.pending == nil {
		delete(c.entries, key)
	}
	c.mu.Unlock()
}

// InvalidateOperation は操作名が一致する確定済みエントリを全て破棄します。
func (c *QueryCache) InvalidateOperation(operation string) {
	prefix := operation + ":"
	c.mu.Lock()
	for k, e := range c.entries {
		if e.pending == nil && len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len は保持中のエントリ数を返します (テスト・デバッグ用)。
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// canonicalJSON は任意の値をキーソート済みのJSON文字列へ正規化します。
// 一度 map へ戻してから組み立て直すことで、構造体のフィールド順や呼び出し側の
// マップ順に依存しない表現を得る。
func canonicalJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}
	var b []byte
	b, err = appendCanonical(b, decoded)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func appendCanonical(b []byte, v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b = append(b, '{')
		for i, k := range keys {
			if i > 0 {
				b = append(b, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			b = append(b, kb...)
			b = append(b, ':')
			b, err = appendCanonical(b, val[k])
			if err != nil {
				return nil, err
			}
		}
		return append(b, '}'), nil
	case []interface{}:
		b = append(b, '[')
		for i, item := range val {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			b, err = appendCanonical(b, item)
			if err != nil {
				return nil, err
			}
		}
		return append(b, ']'), nil
	default:
		vb, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		return append(b, vb...), nil
	}
}
