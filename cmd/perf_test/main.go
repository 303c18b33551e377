package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"trailblazer/pkg/loadtest"
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8080", "服务地址")
		testType    = flag.String("type", "all", "测试类型: read, geo, stress, all")
		concurrency = flag.Int("concurrency", 50, "并发数")
		duration    = flag.Duration("duration", 30*time.Second, "单个场景时长")
	)
	flag.Parse()

	client := loadtest.NewClient(*baseURL)
	ctx := context.Background()

	hctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err := client.Health(hctx)
	cancel()
	if err != nil {
		log.Fatalf("服务器不可用: %s: %v", *baseURL, err)
	}
	fmt.Printf("服务器可用: %s\n", *baseURL)

	var results []*loadtest.Result
	switch *testType {
	case "read":
		results = runRead(ctx, client, *concurrency, *duration)
	case "geo":
		results = runGeo(ctx, client, *concurrency, *duration)
	case "stress":
		results = runStress(ctx, client, *duration)
	case "all":
		results = append(results, runRead(ctx, client, *concurrency, *duration)...)
		results = append(results, runGeo(ctx, client, *concurrency, *duration)...)
		results = append(results, runStress(ctx, client, *duration)...)
	default:
		fmt.Printf("未知的测试类型: %s\n", *testType)
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("================================")
	for _, r := range results {
		fmt.Println(r)
	}
}

// runRead 公开只读接口
func runRead(ctx context.Context, c *loadtest.Client, concurrency int, d time.Duration) []*loadtest.Result {
	get := func(path string) loadtest.RequestFunc { return c.Expect(http.MethodGet, path, "") }

	return []*loadtest.Result{
		loadtest.NewRunner("health", concurrency, d).AddRequest(get("/health")).Run(ctx),
		loadtest.NewRunner("trail_list", concurrency, d).AddRequest(get("/trails")).Run(ctx),
		loadtest.NewRunner("mixed_read", concurrency, d).
			AddRequest(get("/trails")).
			AddRequest(get("/parks")).
			AddRequest(get("/posts")).
			AddRequest(get("/trails/search?q=lake")).
			Run(ctx),
	}
}

// runGeo 附近查询与带坐标的搜索，都需要全表计算距离
func runGeo(ctx context.Context, c *loadtest.Client, concurrency int, d time.Duration) []*loadtest.Result {
	return []*loadtest.Result{
		loadtest.NewRunner("nearby", concurrency, d).
			AddRequest(c.Expect(http.MethodGet, "/trails?near=37.7749,-122.4194&radius=50", "")).
			Run(ctx),
		loadtest.NewRunner("search_near", concurrency, d).
			AddRequest(c.Expect(http.MethodGet, "/trails/search?q=trail&near=44.6,-110.5", "")).
			Run(ctx),
	}
}

// runStress 逐步加大并发，观察 P95 与错误率拐点
func runStress(ctx context.Context, c *loadtest.Client, d time.Duration) []*loadtest.Result {
	var results []*loadtest.Result
	for _, n := range []int{20, 50, 100, 200} {
		r := loadtest.NewRunner(fmt.Sprintf("stress_%d", n), n, d).
			AddRequest(c.Expect(http.MethodGet, "/trails", "", http.StatusOK, http.StatusTooManyRequests)).
			Run(ctx)
		results = append(results, r)
	}
	return results
}
