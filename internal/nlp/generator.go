package nlp

import (
	"math/rand/v2"
	"sync"

	"github.com/org-structure-manager/internal/domain"
)

var recommendationTexts = map[domain.RecommendationType][]string{
	domain.RecommendationEmployeeDistribution: {
		"Рекомендуется перераспределить сотрудников с учетом их компетенций для повышения эффективности. Предлагается перевести специалистов с техническими навыками в ИТ-отдел.",
		"Обнаружен дисбаланс навыков в отделе. Рекомендуется обучение сотрудников новым компетенциям или реорганизация структуры.",
		"Для оптимизации рабочих процессов рекомендуется создать новую группу сотрудников со специализацией в конкретных задачах.",
		"Анализ показал, что в отделе недостаточно специалистов с навыками проектного управления. Рекомендуется добавить сотрудников с этими компетенциями.",
		"Для повышения эффективности отдела рекомендуется равномерное распределение сотрудников с учетом их навыков и опыта.",
	},
	domain.RecommendationWorkloadPrediction: {
		"Прогноз показывает увеличение загрузки отдела на 15% в следующем месяце. Рекомендуется подготовить дополнительные ресурсы.",
		"Ожидается снижение количества заявок на 10% в следующие 2 недели. Можно временно перераспределить ресурсы на другие задачи.",
		"Анализ истории заявок показывает циклическое увеличение нагрузки в конце квартала. Рекомендуется заранее планировать ресурсы.",
		"Прогнозируется стабильная загрузка отдела в ближайший месяц. Текущих ресурсов достаточно для обработки ожидаемого объема заявок.",
		"Данные указывают на возможные пиковые нагрузки в начале следующего месяца. Рекомендуется оптимизировать рабочие процессы.",
	},
}

// Generator выбирает типовой текст рекомендации
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator создаёт генератор. rng == nil означает случайный источник процесса.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Recommend возвращает текст для типа рекомендации; false для неизвестного типа
func (g *Generator) Recommend(t domain.RecommendationType) (string, bool) {
	texts, ok := recommendationTexts[t]
	if !ok {
		return "", false
	}
	return texts[g.intN(len(texts))], true
}

func (g *Generator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

// Texts возвращает все варианты текста для типа
func Texts(t domain.RecommendationType) []string {
	return append([]string(nil), recommendationTexts[t]...)
}
