package eligibility

// Built-in tables used when no table file is configured.
var (
	defaultCategories = []Category{
		{Key: "memurlar", Name: "Memurlar", Ranks: []RankTier{
			{Name: "Stajyer", MinMinutes: 0},
			{Name: "Memur", MinMinutes: 120},
			{Name: "Kıdemli Memur", MinMinutes: 360},
			{Name: "Başmemur", MinMinutes: 720},
		}},
		{Key: "guvenlik", Name: "Güvenlik", Ranks: []RankTier{
			{Name: "Güvenlik Stajyeri", MinMinutes: 0},
			{Name: "Güvenlik Görevlisi", MinMinutes: 240},
			{Name: "Güvenlik Şefi", MinMinutes: 600},
			{Name: "Güvenlik Müdürü", MinMinutes: 1200},
		}},
		{Key: "egitim", Name: "Eğitim Birimi", Ranks: []RankTier{
			{Name: "Eğitmen Adayı", MinMinutes: 0},
			{Name: "Eğitmen", MinMinutes: 300},
			{Name: "Kıdemli Eğitmen", MinMinutes: 900},
			{Name: "Baş Eğitmen", MinMinutes: 1800},
		}},
		{Key: "operasyon", Name: "Operasyon", Ranks: []RankTier{
			{Name: "Operatör", MinMinutes: 0},
			{Name: "Saha Sorumlusu", MinMinutes: 480},
			{Name: "Operasyon Şefi", MinMinutes: 1440},
			{Name: "Operasyon Müdürü", MinMinutes: 2880},
		}},
		{Key: "yonetim", Name: "Yönetim", Ranks: []RankTier{
			{Name: "Yönetici Yardımcısı", MinMinutes: 600},
			{Name: "Yönetici", MinMinutes: 1800},
			{Name: "Genel Müdür", MinMinutes: 3600},
		}},
	}

	defaultSalaryTiers = []SalaryTier{
		{MinHours: 0, Label: "none", Rating: 0},
		{MinHours: 5, Label: "bronz", Rating: 1},
		{MinHours: 10, Label: "gümüş", Rating: 2},
		{MinHours: 20, Label: "altın", Rating: 3},
		{MinHours: 40, Label: "elmas", Rating: 4},
	}

	defaultBonusTiers = []BonusTier{
		{MinHours: 0, Rating: 0},
		{MinHours: 2, Rating: 1},
		{MinHours: 5, Rating: 2},
		{MinHours: 10, Rating: 3},
	}

	defaultAFK = AFKRule{GraceMinutes: 10, IntervalMinutes: 5}
)

// Default returns the built-in tables.
func Default() *Tables {
	t, err := NewTables(defaultCategories, defaultSalaryTiers, defaultBonusTiers, defaultAFK)
	if err != nil {
		panic("eligibility: invalid built-in tables: " + err.Error())
	}
	return t
}
