package loadtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// RequestFunc 单次请求，返回 error 视为失败
type RequestFunc func(ctx context.Context) error

// Runner 固定并发、固定时长的压测
type Runner struct {
	name        string
	concurrency int
	duration    time.Duration
	requests    []RequestFunc

	mu    sync.Mutex
	times []time.Duration
	fails int64
}

// NewRunner 创建压测
func NewRunner(name string, concurrency int, duration time.Duration) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{name: name, concurrency: concurrency, duration: duration}
}

// AddRequest 添加请求，各 worker 轮流执行
func (r *Runner) AddRequest(req RequestFunc) *Runner {
	r.requests = append(r.requests, req)
	return r
}

// Run 运行直到时长耗尽或 ctx 取消
func (r *Runner) Run(ctx context.Context) *Result {
	ctx, cancel := context.WithTimeout(ctx, r.duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < r.concurrency; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			r.worker(ctx, offset)
		}(i)
	}
	wg.Wait()

	return r.result(time.Since(start))
}

func (r *Runner) worker(ctx context.Context, offset int) {
	if len(r.requests) == 0 {
		return
	}
	for i := offset; ctx.Err() == nil; i++ {
		req := r.requests[i%len(r.requests)]
		began := time.Now()
		err := req(ctx)
		elapsed := time.Since(began)

		// 超时中断的请求不计入结果
		if ctx.Err() != nil {
			return
		}

		r.mu.Lock()
		r.times = append(r.times, elapsed)
		if err != nil {
			r.fails++
		}
		r.mu.Unlock()
	}
}

func (r *Runner) result(elapsed time.Duration) *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &Result{
		Name:        r.name,
		Concurrency: r.concurrency,
		Elapsed:     elapsed,
		Total:       int64(len(r.times)),
		Failed:      r.fails,
	}
	if res.Total == 0 {
		return res
	}

	sorted := make([]time.Duration, len(r.times))
	copy(sorted, r.times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	res.QPS = float64(res.Total) / elapsed.Seconds()
	res.ErrorRate = float64(res.Failed) / float64(res.Total)
	res.Avg = sum / time.Duration(len(sorted))
	res.Min = sorted[0]
	res.Max = sorted[len(sorted)-1]
	res.P50 = Percentile(sorted, 0.50)
	res.P95 = Percentile(sorted, 0.95)
	res.P99 = Percentile(sorted, 0.99)
	return res
}

// Percentile sorted 须已升序
func Percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Result 压测结果
type Result struct {
	Name        string        `json:"name"`
	Concurrency int           `json:"concurrency"`
	Elapsed     time.Duration `json:"elapsed"`
	Total       int64         `json:"total"`
	Failed      int64         `json:"failed"`
	QPS         float64       `json:"qps"`
	ErrorRate   float64       `json:"error_rate"`
	Avg         time.Duration `json:"avg"`
	Min         time.Duration `json:"min"`
	Max         time.Duration `json:"max"`
	P50         time.Duration `json:"p50"`
	P95         time.Duration `json:"p95"`
	P99         time.Duration `json:"p99"`
}

// String 单行摘要
func (r *Result) String() string {
	return fmt.Sprintf("%-16s | 并发: %-4d | 请求: %-7d | QPS: %-8.2f | P50: %-10v | P95: %-10v | P99: %-10v | 错误率: %.2f%%",
		r.Name, r.Concurrency, r.Total, r.QPS, r.P50, r.P95, r.P99, r.ErrorRate*100)
}
