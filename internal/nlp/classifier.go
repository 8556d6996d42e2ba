// Package nlp содержит простую классификацию заявок по ключевым словам
// и генератор типовых рекомендаций.
package nlp

import (
	"regexp"
	"strings"

	"github.com/org-structure-manager/internal/domain"
)

// MinConfidence - ниже этого порога заявка считается неклассифицированной
const MinConfidence = 0.2

var keywords = map[domain.RequestType][]string{
	domain.RequestTypeIT: {
		"компьютер", "ноутбук", "система", "принтер", "сканер", "интернет", "почта",
		"почтовый", "пароль", "учетная запись", "учетной записи", "сервер", "windows",
		"офис", "excel", "word", "powerpoint", "outlook", "программа", "программное",
		"приложение", "установка", "обновление", "вирус", "антивирус", "настройка",
		"подключение", "доступ", "логин", "ip", "it", "ит", "айти",
	},
	domain.RequestTypeHR: {
		"отпуск", "больничный", "hr", "кадры", "персонал", "собеседование", "прием", "увольнение",
		"сотрудник", "сотрудника", "коллега", "коллеги", "заявление", "документ", "справка",
		"трудовая книжка", "трудовой договор", "контракт", "испытательный срок", "зарплата",
		"оклад", "премия", "бонус", "компенсация", "отдел кадров", "кадровый", "обучение",
		"тренинг", "курс", "повышение квалификации", "аттестация", "оценка",
	},
	domain.RequestTypeLogistics: {
		"доставка", "перевозка", "транспорт", "груз", "склад", "запас", "отгрузка", "поставка",
		"заказ", "логистика", "курьер", "экспедитор", "посылка", "накладная", "товар", "материал",
		"сырье", "поставщик", "клиент", "маршрут", "машина", "автомобиль", "водитель",
		"хранение", "канцтовары", "офисные", "бумага", "мебель", "офисная техника",
	},
}

// whitespace разделяет слова; пустые куски по краям текста тоже считаются словами
var whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

// Classification - результат классификации заявки
type Classification struct {
	Type       domain.RequestType `json:"type"`
	Confidence float64            `json:"confidence"`
	Matches    int                `json:"matches"`
}

// Classify определяет тип заявки по вхождениям ключевых слов в заголовок и описание.
// Уверенность: совпадения / min(число ключевых слов типа, слов в тексте / 3), не больше 1.
// При равенстве совпадений выигрывает тип, идущий раньше в domain.RequestTypes.
func Classify(title, description string) (Classification, bool) {
	text := strings.ToLower(title + " " + description)

	var (
		best     domain.RequestType
		maxCount int
	)
	for _, t := range domain.RequestTypes {
		count := 0
		for _, word := range keywords[t] {
			if strings.Contains(text, word) {
				count++
			}
		}
		if count > maxCount {
			best, maxCount = t, count
		}
	}
	if maxCount == 0 {
		return Classification{}, false
	}

	words := float64(len(whitespace.Split(text, -1)))
	confidence := min(float64(maxCount)/min(float64(len(keywords[best])), words/3), 1)
	if confidence < MinConfidence {
		return Classification{}, false
	}

	return Classification{Type: best, Confidence: confidence, Matches: maxCount}, true
}
