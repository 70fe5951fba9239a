package release

// Event is the event/promotion release form.
type Event struct {
	TitleText      string
	Intro          string
	EventName      string
	Period         string
	Details        string
	TargetProducts string
	Notes          string
	Closing        string
}

// NewEvent sanitizes e and validates its required fields.
func NewEvent(e Event) (*Event, error) {
	out := &Event{
		TitleText:      Sanitize(e.TitleText),
		Intro:          Sanitize(e.Intro),
		EventName:      Sanitize(e.EventName),
		Period:         Sanitize(e.Period),
		Details:        Sanitize(e.Details),
		TargetProducts: Sanitize(e.TargetProducts),
		Notes:          Sanitize(e.Notes),
		Closing:        Sanitize(e.Closing),
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Event) Kind() Kind    { return KindEvent }
func (e *Event) Title() string { return e.TitleText }

func (e *Event) Fields() []Field {
	return []Field{
		{Name: "title", Key: "제목", Display: "제목", Required: true, Value: e.TitleText,
			Placeholder: "예시) 제이씨현시스템㈜, PNY GeForce RTX 4070 이상 제품 대상, 게임 증정 프로모션 진행!"},
		{Name: "intro", Key: "도입부", Display: "도입부", Required: true, Multiline: true, Value: e.Intro,
			Placeholder: "예시) 국내 PNY Technologies, Inc. 공식 공급원 제이씨현시스템㈜ (대표: 차중석, 차정헌)은 PNY GeForce RTX 4070 이상의 제품(RTX 4090, RTX 40 SUPER, RTX 4070) 구매 고객을 대상으로 Indiana Jones and the Great Circle 게임 코드를 증정하는 프로모션을 진행한다."},
		{Name: "event_name", Key: "행사명", Display: "행사명", Required: true, Value: e.EventName,
			Placeholder: "예시) Indiana Jones and the Great Circle 게임 코드를 증정"},
		{Name: "period", Key: "행사기간", Display: "행사 기간", Required: true, Value: e.Period,
			Placeholder: "예시) 한국 시간 기준으로 2024년 11월 12일 밤 10시부터 12월 29일까지"},
		{Name: "details", Key: "행사내용", Display: "행사 내용", Required: true, Multiline: true, Value: e.Details,
			Placeholder: "예시)\n게임 타이틀 청구 기간은 2025년 1월 30일까지다. 기한 내에 행사 페이지에 등록된 QR 코드를 통해 응모해야 하며, 반드시 구매 영수증을 첨부해야 최종 접수된다."},
		{Name: "target_products", Key: "대상 제품", Display: "대상 제품", Required: true, Multiline: true, Value: e.TargetProducts,
			Placeholder: "예시)신작 게임을 증정하는 PNY RTX 40 시리즈 그래픽카드는 지포스 RTX 4090, RTX 4080 SUPER, RTX 4080, RTX 4070 Ti SUPER, RTX 4070 Ti, RTX 4070 SUPER, RTX 4070 모델이다."},
		{Name: "notes", Key: "유의사항", Display: "유의사항", Multiline: true, Value: e.Notes,
			Placeholder: "예시)\n- 재고 소진 시 조기 종료될 수 있음\n- 일부 제품은 행사에서 제외될 수 있음\n- 사은품은 추후 배송될 수 있음"},
		{Name: "closing", Key: "맺음말", Display: "맺음말", Multiline: true, Value: e.Closing,
			Placeholder: "예시) PNY는 소비자 및 비즈니스 등급의 전자 제품 제조에 전념하는 글로벌 기술 리더다. PNY는 전 세계 소비자, B2B 및 OEM에 서비스를 제공하는 30년 이상의 비즈니스 경험을 가지고 있다."},
	}
}

func (e *Event) Validate() error            { return validate(e.Fields()) }
func (e *Event) Payload() map[string]string { return payload(KindEvent, e.Fields()) }
