package database

import (
	"log"

	"ib-riskcalc/internal/models"

	"gorm.io/gorm"
)

// Стартовый каталог угроз (по MAGERIT) и мер (по ISO 27002):
// сеются один раз, дальше каталог правится через API.
func seedCatalog(db *gorm.DB) {
	seedThreats(db)
	seedVulnerabilities(db)
	seedMeasures(db)
	seedThreatMeasures(db)
}

func seedThreats(db *gorm.DB) {
	threats := []models.Threat{
		{
			Code: "N.1", Name: "Пожар", Category: "Техногенная",
			DegradationD: 100, DegradationI: 50, DegradationC: 0,
			Probability: 1,
		},
		{
			Code: "I.5", Name: "Отказ оборудования", Category: "Техногенная",
			DegradationD: 80, DegradationI: 20, DegradationC: 0,
			Probability: 3,
		},
		{
			Code: "E.1", Name: "Ошибки пользователей", Category: "Ошибки персонала",
			DegradationD: 30, DegradationI: 60, DegradationC: 20,
			Probability: 4,
		},
		{
			Code: "E.2", Name: "Ошибки администратора", Category: "Ошибки персонала",
			DegradationD: 60, DegradationI: 80, DegradationC: 40,
			Probability: 2,
		},
		{
			Code: "A.11", Name: "Несанкционированный доступ", Category: "Атаки",
			DegradationD: 20, DegradationI: 80, DegradationC: 100,
			Probability: 3,
		},
		{
			Code: "A.24", Name: "Отказ в обслуживании (DoS)", Category: "Атаки",
			DegradationD: 100, DegradationI: 0, DegradationC: 0,
			Probability: 3,
		},
		{
			Code: "A.18", Name: "Уничтожение информации", Category: "Атаки",
			DegradationD: 80, DegradationI: 100, DegradationC: 0,
			Probability: 2,
		},
		{
			Code: "A.19", Name: "Утечка информации", Category: "Атаки",
			DegradationD: 0, DegradationI: 0, DegradationC: 100,
			Probability: 3,
		},
	}

	for _, th := range threats {
		var count int64
		if err := db.Model(&models.Threat{}).
			Where("code = ?", th.Code).
			Count(&count).Error; err != nil {
			log.Printf("failed to check threat %s: %v", th.Code, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&th).Error; err != nil {
			log.Printf("failed to seed threat %s: %v", th.Code, err)
		}
	}
}

// уязвимости, через которые реализуются угрозы каталога
func seedVulnerabilities(db *gorm.DB) {
	vulns := map[string][]models.Vulnerability{
		"I.5": {{Code: "V-I5-1", Name: "Отсутствие резервирования оборудования"}},
		"E.1": {{Code: "V-E1-1", Name: "Отсутствие обучения пользователей"}},
		"A.11": {
			{Code: "V-A11-1", Name: "Слабая парольная политика"},
			{Code: "V-A11-2", Name: "Избыточные права доступа"},
		},
		"A.19": {{Code: "V-A19-1", Name: "Передача данных без шифрования"}},
	}

	for threatCode, vs := range vulns {
		var th models.Threat
		if err := db.Where("code = ?", threatCode).First(&th).Error; err != nil {
			continue
		}
		for _, v := range vs {
			var count int64
			if err := db.Model(&models.Vulnerability{}).
				Where("code = ?", v.Code).
				Count(&count).Error; err != nil || count > 0 {
				continue
			}
			v.ThreatID = th.ID
			if err := db.Create(&v).Error; err != nil {
				log.Printf("failed to seed vulnerability %s: %v", v.Code, err)
			}
		}
	}
}

func seedMeasures(db *gorm.DB) {
	measures := []models.ControlMeasure{
		{Code: "ISO-8.13", Name: "Резервное копирование", Standard: "ISO 27002:2022 8.13"},
		{Code: "ISO-8.14", Name: "Резервирование средств обработки", Standard: "ISO 27002:2022 8.14"},
		{Code: "ISO-5.15", Name: "Управление доступом", Standard: "ISO 27002:2022 5.15"},
		{Code: "ISO-8.5", Name: "Строгая аутентификация", Standard: "ISO 27002:2022 8.5"},
		{Code: "ISO-8.24", Name: "Криптографическая защита", Standard: "ISO 27002:2022 8.24"},
		{Code: "ISO-8.16", Name: "Мониторинг и регистрация событий", Standard: "ISO 27002:2022 8.16"},
		{Code: "ISO-5.29", Name: "Непрерывность ИБ при сбоях", Standard: "ISO 27002:2022 5.29"},
	}

	for _, m := range measures {
		var count int64
		if err := db.Model(&models.ControlMeasure{}).
			Where("code = ?", m.Code).
			Count(&count).Error; err != nil {
			log.Printf("failed to check measure %s: %v", m.Code, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&m).Error; err != nil {
			log.Printf("failed to seed measure %s: %v", m.Code, err)
		}
	}
}

// связки "угроза → рекомендуемые меры" по кодам
func seedThreatMeasures(db *gorm.DB) {
	links := map[string][]string{
		"N.1":  {"ISO-8.13", "ISO-5.29"},
		"I.5":  {"ISO-8.13", "ISO-8.14"},
		"E.1":  {"ISO-8.16", "ISO-5.15"},
		"E.2":  {"ISO-8.16", "ISO-5.15"},
		"A.11": {"ISO-5.15", "ISO-8.5"},
		"A.24": {"ISO-8.14", "ISO-5.29"},
		"A.18": {"ISO-8.13", "ISO-8.16"},
		"A.19": {"ISO-8.24", "ISO-5.15"},
	}

	for threatCode, measureCodes := range links {
		var th models.Threat
		if err := db.Where("code = ?", threatCode).First(&th).Error; err != nil {
			continue
		}
		for _, mc := range measureCodes {
			var m models.ControlMeasure
			if err := db.Where("code = ?", mc).First(&m).Error; err != nil {
				continue
			}
			var count int64
			if err := db.Model(&models.ThreatMeasure{}).
				Where("threat_id = ? AND measure_id = ?", th.ID, m.ID).
				Count(&count).Error; err != nil || count > 0 {
				continue
			}
			link := models.ThreatMeasure{ThreatID: th.ID, MeasureID: m.ID}
			if err := db.Create(&link).Error; err != nil {
				log.Printf("failed to seed threat-measure link %s -> %s: %v", threatCode, mc, err)
			}
		}
	}
}
