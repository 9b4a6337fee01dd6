package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"assistant/internal/core/directive"
	"assistant/internal/core/scope"
)

// historyWindow is how many transcript turns the model sees per prompt
const historyWindow = 10

// capability describes one requestable data category for the model
type capability struct {
	name        string
	description string
	operations  []string
	filters     []string
}

// declaration order matches scope.Categories
var capabilities = []capability{
	{"tasks", "Görevler ve planlayıcı etkinlikleri", []string{"read", "create", "update", "analyze"}, []string{"date_range", "status", "project", "tag"}},
	{"notes", "Kullanıcı notları", []string{"read", "create", "search"}, []string{"date_range", "tags", "project"}},
	{"health", "Sağlık verileri (adım, kalori, aktif dakika)", []string{"read", "analyze", "trend"}, []string{"date_range"}},
	{"sleep", "Uyku takibi", []string{"read", "analyze", "trend"}, []string{"date_range", "quality"}},
	{"weight", "Kilo ve vücut kompozisyonu takibi", []string{"read", "analyze", "trend"}, []string{"date_range"}},
	{"meals", "Yemek ve beslenme takibi", []string{"read", "analyze"}, []string{"date_range", "meal_type"}},
	{"workouts", "Egzersiz ve antrenman kayıtları", []string{"read", "analyze"}, []string{"date_range", "workout_type"}},
	{"portfolio", "Fon yatırımları ve portföy", []string{"read", "analyze", "calculate"}, []string{"fund_code", "date_range"}},
	{"goals", "Finansal hedefler", []string{"read", "analyze", "track_progress"}, []string{"category", "status"}},
	{"budget", "Bütçe ve harcama takibi", []string{"read", "analyze"}, []string{"date_range", "month"}},
	{"salary", "Maaş ve gelir bilgileri", []string{"read", "calculate"}, []string{"year", "month"}},
	{"friends", "Arkadaş listesi", []string{"read"}, nil},
}

const fence = "```"

const capabilitiesHead = `
# SİSTEM YETENEKLERİ

Sen Personal Assistant uygulamasının AI asistanısın. Aşağıdaki yeteneklere sahipsin:

## VERİ ERİŞİMİ

Kullanıcının verilerine erişmek için JSON formatında veri talebi yapabilirsin.
Kullanılabilir veri kategorileri:

`

var capabilitiesTail = `

## VERİ TALEBİ FORMATI

Kullanıcının sorusunu yanıtlamak için veriye ihtiyaç duyduğunda, aşağıdaki JSON formatında istek yap:

` + fence + `json
{
    "data_request": {
        "category": "tasks|notes|health|sleep|weight|meals|workouts|portfolio|goals|budget|salary|friends",
        "time_range": "today|yesterday|week|month|year|all",
        "filters": {
            "field": "value"
        },
        "custom_range": {
            "start_date": "YYYY-MM-DD",
            "end_date": "YYYY-MM-DD"
        }
    }
}
` + fence + `

## ÖRNEK VERİ TALEPLERİ

1. Bu haftanın görevlerini görmek için:
` + fence + `json
{
    "data_request": {
        "category": "tasks",
        "time_range": "week",
        "filters": {}
    }
}
` + fence + `

2. Son aydaki uyku verilerini analiz etmek için:
` + fence + `json
{
    "data_request": {
        "category": "sleep",
        "time_range": "month",
        "filters": {}
    }
}
` + fence + `

3. Belirli bir fondaki yatırım bilgilerini görmek için:
` + fence + `json
{
    "data_request": {
        "category": "portfolio",
        "time_range": "all",
        "filters": {
            "fund_code": "TQE"
        }
    }
}
` + fence + `

## ÖNEMLİ KURALLAR

1. **Önce Veri Talep Et**: Kullanıcı bir soru sorduğunda, yanıt vermeden ÖNCE gerekli veriyi talep et
2. **Spesifik Ol**: Sadece ihtiyaç duyduğun veriyi talep et
3. **Zaman Aralığı Belirt**: Uygun zaman aralığını seç (today, week, month, vb.)
4. **Filtrele**: Gerekirse filters ile veriyi daralt
5. **Analiz Sonrası Yanıt**: Veriyi aldıktan SONRA analiz et ve kullanıcıya yanıt ver

## KULLANICI İLE ETKİLEŞİM

- Türkçe konuş
- Dostça ve profesyonel ol
- Açık ve anlaşılır açıklamalar yap
- Veri görselleştirmesi öner (grafik, tablo, vb.)
- Önerilerde bulunurken mantıklı gerekçeler sun
- Kullanıcı gizliliğine saygı göster

## YANIT FORMATI

Kullanıcıya yanıt verirken:
1. Kısa ve öz ol
2. Bullet point kullan
3. Sayıları ve metrikleri vurgula
4. Trendleri ve değişimleri belirt
5. Actionable önerilerde bulun
`

// capabilitiesPrompt is the system section of every conversation prompt.
// Its wording is part of the protocol the model was taught
var capabilitiesPrompt = buildCapabilitiesPrompt()

func buildCapabilitiesPrompt() string {
	var b strings.Builder
	b.WriteString(capabilitiesHead)
	for _, c := range capabilities {
		fmt.Fprintf(&b, "\n**%s** - %s\n", strings.ToUpper(c.name), c.description)
		fmt.Fprintf(&b, "  • İşlemler: %s\n", strings.Join(c.operations, ", "))
		if len(c.filters) > 0 {
			fmt.Fprintf(&b, "  • Filtreler: %s\n", strings.Join(c.filters, ", "))
		}
	}
	b.WriteString(capabilitiesTail)
	return b.String()
}

// collection is one resolved (request, result) pair accumulated during a turn
type collection struct {
	request directive.DataRequest
	result  any
}

func jsonBlock(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(b)
}

// buildPrompt assembles the full mid-loop prompt: capabilities, visible
// transcript, data collected so far, the current message and instructions
func buildPrompt(message string, history []directive.Turn, collected []collection) string {
	var b strings.Builder
	b.WriteString(capabilitiesPrompt)

	if len(history) > 0 {
		b.WriteString("\n## KONUŞMA GEÇMİŞİ\n")
		tail := history
		if len(tail) > historyWindow {
			tail = tail[len(tail)-historyWindow:]
		}
		for _, t := range tail {
			switch {
			case t.IsUser:
				fmt.Fprintf(&b, "Kullanıcı: %s\n", t.Content)
			case !t.DataRequest:
				fmt.Fprintf(&b, "Asistan: %s\n", t.Content)
			}
		}
	}

	if len(collected) > 0 {
		b.WriteString("\n## TOPLANAN VERİLER\n")
		for i, c := range collected {
			fmt.Fprintf(&b, "\n### Veri Talebi %d\n", i+1)
			fmt.Fprintf(&b, "Kategori: %s\n", c.request.Category)
			fmt.Fprintf(&b, "Zaman Aralığı: %s\n", c.request.TimeRange)
			if er, ok := c.result.(scope.ErrorResult); ok {
				fmt.Fprintf(&b, "Hata: %s\n", er.Error)
			} else if res, ok := c.result.(scope.Result); ok {
				fmt.Fprintf(&b, "Veri:\n%s\n", jsonBlock(res.Data))
			}
		}
	}

	fmt.Fprintf(&b, "\n## KULLANICI MESAJI\n\nKullanıcı: %s\n", message)

	b.WriteString("\n## TALİMATLAR\n")
	if len(collected) == 0 {
		b.WriteString("Kullanıcının sorusunu yanıtlamak için veriye ihtiyacın varsa, JSON formatında veri talebi yap. Yoksa doğrudan yanıt ver.\n")
	} else {
		b.WriteString("Yukarıda toplanan verilerle kullanıcının sorusunu yanıtla. Daha fazla veriye ihtiyacın varsa başka bir JSON veri talebi yapabilirsin. Aksi takdirde analiz et ve yanıt ver.\n")
	}

	b.WriteString("\nAsistan:")
	return b.String()
}

// buildFinalPrompt is the stricter closing prompt used once the request
// budget is spent, it withdraws the data-request affordance
func buildFinalPrompt(message string, collected []collection) string {
	var b strings.Builder
	b.WriteString("# KULLANICI SORUSU\n\n")
	fmt.Fprintf(&b, "%s\n\n", message)

	b.WriteString("# TOPLANAN VERİLER\n\n")
	for i, c := range collected {
		fmt.Fprintf(&b, "## Veri Seti %d\n", i+1)
		fmt.Fprintf(&b, "Kategori: %s\n", c.request.Category)
		fmt.Fprintf(&b, "Zaman Aralığı: %s\n\n", c.request.TimeRange)
		if er, ok := c.result.(scope.ErrorResult); ok {
			fmt.Fprintf(&b, "Hata: %s\n\n", er.Error)
		} else if res, ok := c.result.(scope.Result); ok {
			fmt.Fprintf(&b, "%sjson\n%s\n%s\n\n", fence, jsonBlock(res.Data), fence)
		}
	}

	b.WriteString("# TALİMAT\n\n")
	b.WriteString("Yukarıdaki verileri kullanarak kullanıcının sorusunu yanıtla. Verileri analiz et, trendleri belirt, ve actionable öneriler sun. Türkçe, dostça ve profesyonel bir dille yanıt ver.\n\n")
	b.WriteString("Asistan:")
	return b.String()
}

// buildQuickAnalysisPrompt is the single-shot analysis prompt
func buildQuickAnalysisPrompt(category, timeRange string, data any) string {
	var b strings.Builder
	b.WriteString("Sen bir veri analisti asistanısın. Aşağıdaki veriyi analiz et ve özetini sun.\n\n")
	fmt.Fprintf(&b, "# VERİ KATEGORİSİ: %s\n", strings.ToUpper(category))
	fmt.Fprintf(&b, "# ZAMAN ARALIĞI: %s\n\n", timeRange)
	fmt.Fprintf(&b, "# VERİ:\n%sjson\n%s\n%s\n\n", fence, jsonBlock(data), fence)
	b.WriteString("# TALİMAT:\nBu veriyi analiz et ve kullanıcıya:\n")
	b.WriteString("1. Kısa özet (2-3 cümle)\n")
	b.WriteString("2. Önemli metrikler ve sayılar\n")
	b.WriteString("3. Trendler (artış/azalış)\n")
	b.WriteString("4. Actionable öneriler (2-3 madde)\n\n")
	b.WriteString("Türkçe, açık ve anlaşılır şekilde yanıt ver.\n\nAsistan:")
	return b.String()
}
