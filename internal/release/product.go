package release

// Product is the product launch/review release form.
type Product struct {
	TitleText   string
	Intro       string
	ProductName string
	ReleaseDate string
	Category    string
	Target      string
	SalesPoints string
	Design      string
	Specs       string
	PriceInfo   string
	Closing     string
}

// NewProduct sanitizes p and validates its required fields.
func NewProduct(p Product) (*Product, error) {
	out := &Product{
		TitleText:   Sanitize(p.TitleText),
		Intro:       Sanitize(p.Intro),
		ProductName: Sanitize(p.ProductName),
		ReleaseDate: Sanitize(p.ReleaseDate),
		Category:    Sanitize(p.Category),
		Target:      Sanitize(p.Target),
		SalesPoints: Sanitize(p.SalesPoints),
		Design:      Sanitize(p.Design),
		Specs:       Sanitize(p.Specs),
		PriceInfo:   Sanitize(p.PriceInfo),
		Closing:     Sanitize(p.Closing),
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Product) Kind() Kind    { return KindProduct }
func (p *Product) Title() string { return p.TitleText }

func (p *Product) Fields() []Field {
	return []Field{
		{Name: "title", Key: "제목", Display: "제목", Required: true, Value: p.TitleText,
			Placeholder: "예시) 제이씨현시스템㈜, GIGABYTE M27QA ICE 게이밍 모니터 출시!"},
		{Name: "intro", Key: "도입부", Display: "도입부", Required: true, Multiline: true, Value: p.Intro,
			Placeholder: "예시) GIGABYTE Technology Co., LTD(이하 기가바이트)의 공식 공급원인 제이씨현시스템㈜ (대표: 차중석, 차정헌)은 2025년 1월, 'GIGABYTE M27QA ICE'를 새롭게 출시했다."},
		{Name: "product_name", Key: "제품명", Display: "제품명/시리즈명", Required: true, Value: p.ProductName,
			Placeholder: "예시) 기가바이트 M27QA ICE 게이밍 모니터"},
		{Name: "release_date", Key: "출시일", Display: "출시(예정)일", Value: p.ReleaseDate,
			Placeholder: "예시) 2024년 1월 9일"},
		{Name: "category", Key: "제품 카테고리", Display: "제품 카테고리", Value: p.Category,
			Placeholder: "예시) 게이밍 모니터"},
		{Name: "target", Key: "주요 타깃", Display: "주요 타깃", Value: p.Target,
			Placeholder: "예시) 화이트 색상의 모니터를 원하는 게이머"},
		{Name: "sales_points", Key: "주요 특징(세일즈 포인트)", Display: "주요 특징(세일즈 포인트)", Required: true, Multiline: true, Value: p.SalesPoints,
			Placeholder: "예시)\n- 27인치에 적합한 해상도인 QHD(2560*1440) 해상도\n- 광시야각 SS IPS\n- 180Hz의 고주사율\n- 응답속도 1ms(MPRT)\n- G-싱크 및 프리싱크 호환\n- DCI-P3 95%의 색재현율\n- 10비트 컬러, VESA HDR 400 지원\n- KVM스위치 내장\n- 3년 무상의 A/S 보증 서비스"},
		{Name: "design", Key: "주요 특징(디자인)", Display: "주요 특징(디자인)", Required: true, Value: p.Design,
			Placeholder: "예시) ICE로 대표되는 기가바이트의 화이트 디자인"},
		{Name: "specs", Key: "세부 스펙 및 성능", Display: "세부 스펙 및 성능", Multiline: true, Value: p.Specs,
			Placeholder: "예시)\n- 게임 편의 기능인 'Game Assist' 제공\n- 오랜 시간 편안한 게이밍을 위한 로우 블루라이트, 플리커 프리 기술 제공"},
		{Name: "price_info", Key: "가격 및 판매 정보", Display: "가격 및 판매 정보", Value: p.PriceInfo,
			Placeholder: "예시) 자세한 정보는 홈페이지를 통해 확인 가능합니다"},
		{Name: "closing", Key: "맺음말", Display: "맺음말", Value: p.Closing,
			Placeholder: "예시) 앞으로도 더 좋은 제품으로 보답하겠습니다."},
	}
}

func (p *Product) Validate() error            { return validate(p.Fields()) }
func (p *Product) Payload() map[string]string { return payload(KindProduct, p.Fields()) }
