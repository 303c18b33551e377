package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"trailblazer/pkg/loadtest"
)

// 并发切换同一用户对同一步道的收藏，验证结束后至多一条收藏记录
func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "服务地址")
		total   = flag.Int("n", 1000, "并发切换次数")
	)
	flag.Parse()

	ctx := context.Background()
	client := loadtest.NewClient(*baseURL)

	email := fmt.Sprintf("stress-%d@example.com", time.Now().UnixNano())
	token, err := client.Register(ctx, email, "stress-password")
	if err != nil {
		log.Fatalf("注册压测账号失败: %v", err)
	}
	trailID, err := client.CreateTrail(ctx, token, "Stress Test Trail", 37.7749, -122.4194)
	if err != nil {
		log.Fatalf("创建步道失败: %v", err)
	}

	fmt.Printf("开始压测：%d 次并发切换收藏 (TrailID: %d)...\n", *total, trailID)

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok, failed int
	)
	path := fmt.Sprintf("/trails/%d/favorite", trailID)
	started := time.Now()
	for i := 0; i < *total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := client.Do(ctx, http.MethodPost, path, token, nil, nil)
			mu.Lock()
			defer mu.Unlock()
			if err == nil && status == http.StatusOK {
				ok++
			} else {
				failed++
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(started)

	var favorites struct {
		Data []struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if _, err := client.Do(ctx, http.MethodGet, "/me/favorites", token, nil, &favorites); err != nil {
		log.Fatalf("查询收藏失败: %v", err)
	}

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", elapsed)
	fmt.Printf("QPS: %.2f\n", float64(*total)/elapsed.Seconds())
	fmt.Printf("成功: %d, 失败: %d\n", ok, failed)
	fmt.Printf("最终收藏数: %d (预期 0 或 1)\n", len(favorites.Data))
	fmt.Println("--------------------------------------------------")
	if len(favorites.Data) > 1 {
		log.Fatal("重复收藏记录")
	}
}
