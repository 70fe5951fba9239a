package release

import (
	"fmt"

	"github.com/mithrel/pressgen/pkg/api"
)

const contactClosing = "\n\n이와 관련한 보도자료를 송부하며, 제품에 대한 추가 자료 요청이나 문의는\n아래 연락처로 부탁 드립니다.\n\n감사합니다."

// Fallback builds the news text by filling the fixed template for r's kind.
// It is used whenever the generation webhook cannot produce a result.
func Fallback(r Release) api.Generated {
	var text string
	switch x := r.(type) {
	case *Product:
		text = fmt.Sprintf("%s은(는) %s에 %s을(를) 출시한다고 발표했습니다.\n\n"+
			"%s은(는) %s 제품으로, %s을 위해 개발되었습니다.\n\n"+
			"%s\n\n"+
			"디자인 측면에서는 %s\n\n"+
			"제품의 주요 스펙으로는 %s\n\n"+
			"%s\n\n"+
			"%s",
			x.Intro, x.ReleaseDate, x.ProductName,
			x.ProductName, x.Category, x.Target,
			x.SalesPoints,
			x.Design,
			x.Specs,
			x.PriceInfo,
			x.Closing)
	case *Event:
		text = fmt.Sprintf("%s은(는) %s을(를) 진행한다고 발표했습니다.\n\n"+
			"행사 기간: %s\n\n"+
			"%s\n\n"+
			"%s\n\n"+
			"유의사항:\n%s\n\n"+
			"%s",
			x.Intro, x.EventName,
			x.Period,
			x.Details,
			x.TargetProducts,
			x.Notes,
			x.Closing)
	}
	return api.Generated{
		Title: r.Title(),
		News:  text + contactClosing,
	}
}
