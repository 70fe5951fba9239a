package main

import (
	"fmt"
	mrand "math/rand"
	"os"
	"path/filepath"

	"github.com/mithrel/pressgen/internal/release"
)

// Writes sample form files for `pressgen generate -f`.
func main() {
	dir := "samples"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	products := []string{"RTX 4070 SUPER", "QHD 게이밍 모니터", "무선 기계식 키보드", "NVMe SSD 2TB", "미니 PC"}
	targets := []string{"게이머", "크리에이터", "사무용 사용자", "학생"}
	colors := []string{"화이트", "블랙", "실버"}

	const total = 20
	for i := 0; i < total; i++ {
		var (
			kind release.Kind
			vals map[string]string
		)
		name := products[mr.Intn(len(products))]
		if i%4 == 0 { // ~25% events
			kind = release.KindEvent
			vals = map[string]string{
				"title":           fmt.Sprintf("%s 구매 고객 대상 증정 이벤트 %02d", name, i+1),
				"intro":           "제이씨현시스템㈜(대표 차현배)",
				"event_name":      fmt.Sprintf("%s 사은품 증정", name),
				"period":          fmt.Sprintf("2024년 %d월 1일 ~ %d월 말", 1+mr.Intn(12), 1+mr.Intn(12)),
				"details":         "- 구매 인증 시 사은품 증정\n- 선착순 100명",
				"target_products": name,
			}
		} else {
			kind = release.KindProduct
			vals = map[string]string{
				"title":        fmt.Sprintf("**%s** 국내 출시 %02d", name, i+1),
				"intro":        "제이씨현시스템㈜(대표 차현배)",
				"product_name": name,
				"target":       targets[mr.Intn(len(targets))],
				"sales_points": fmt.Sprintf("- 전작 대비 %d%% 향상된 성능\n- 저소음 설계", 10+mr.Intn(40)),
				"design":       colors[mr.Intn(len(colors))] + " 알루미늄 바디",
				"price_info":   fmt.Sprintf("%d,000원", 100+mr.Intn(900)),
			}
		}

		sk, err := release.Skeleton(kind, vals)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-%02d.yaml", kind, i+1))
		if err := os.WriteFile(path, []byte(sk), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	fmt.Printf("wrote %d sample forms to %s\n", total, dir)
}
