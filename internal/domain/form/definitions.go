package form

import "strconv"

// Field keys shared with the mini-app payload.
const (
	KeyReadiness           = "readiness"
	KeyCompanyName         = "companyName"
	KeyINN                 = "inn"
	KeyMentorName          = "mentorName"
	KeyMentorEmail         = "mentorEmail"
	KeyMentorPhone         = "mentorPhone"
	KeyMentorTelegram      = "mentorTelegram"
	KeyDepartment          = "department"
	KeyParticipantsCount   = "participantsCount"
	KeyResources           = "resources"
	KeyShortTermGoals      = "shortTermGoals"
	KeySkillRequirements   = "skillRequirements"
	KeyOtherRequirements   = "otherRequirements"
	KeyWorkMode            = "workMode"
	KeyWorkSchedule        = "workSchedule"
	KeyEmploymentProspects = "employmentProspects"
	KeyPaymentAbility      = "paymentAbility"
	KeyOtherWishes         = "otherWishes"

	KeyFullName           = "fio"
	KeyAge                = "age"
	KeyLivesInMoscow      = "livesInMoscow"
	KeyEmail              = "email"
	KeyPhone              = "phone"
	KeyTelegram           = "telegram"
	KeyResumeLink         = "resumeLink"
	KeyUniversity         = "university"
	KeyDirection          = "direction"
	KeyEducationLevel     = "educationLevel"
	KeyStudyStatus        = "status"
	KeyCourse             = "course"
	KeyCustomHours        = "customHours"
	KeyPaymentPossibility = "paymentPossibility"
)

const (
	EducationBachelor   = "Бакалавриат"
	EducationSpecialist = "Специалитет"
	EducationMaster     = "Магистратура"
	EducationPostgrad   = "Аспирантура"

	StatusStudent  = "Студент"
	StatusGraduate = "Выпускник"

	ScheduleOther = "Другое"
)

var (
	ReadinessOptions = []string{
		"Да, готовы уже сейчас",
		"Да, готовы с сентября",
		"Не уверены",
		"Не готовы",
	}
	WorkModeOptions        = []string{"Онлайн", "Офлайн", "Гибрид"}
	CompanyScheduleOptions = []string{"20 часов в неделю", "40 часов в неделю", "Ненормированный рабочий график"}
	EmploymentOptions      = []string{"Да", "Нет", "Обсуждается в индивидуальном порядке"}
	PaymentAbilityOptions  = []string{
		"Да, до 20 тысяч рублей в месяц",
		"Да, от 20 до 50 тысяч рублей в месяц",
		"Да, от 50 до 100 тысяч рублей в месяц",
		"Да, более 100 тысяч рублей в месяц",
		"Только в исключительных случаях",
		"Нет",
	}

	EducationOptions          = []string{EducationBachelor, EducationSpecialist, EducationMaster, EducationPostgrad}
	StudyStatusOptions        = []string{StatusStudent, StatusGraduate}
	ParticipantScheduleOption = []string{"20 часов в неделю", "30 часов в неделю", "40 часов в неделю", ScheduleOther}
	PaymentPossibilityOptions = []string{
		"Только оплачиваемая стажировка",
		"Готов(а) к неоплачиваемой стажировке",
		"Рассмотрю оба варианта",
	}
)

// courseCounts is the number of study years per education level.
var courseCounts = map[string]int{
	EducationBachelor:   4,
	EducationSpecialist: 5,
	EducationMaster:     2,
	EducationPostgrad:   2,
}

// CourseOptions returns "1".."N" for the given education level.
func CourseOptions(level string) []string {
	n := courseCounts[level]
	opts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		opts = append(opts, strconv.Itoa(i))
	}
	return opts
}

func requiredText(key, label, missing string) Field {
	return Field{Key: key, Label: label, Kind: KindText, Required: true, MissingMessage: missing}
}

func requiredChoice(key, label string, options []string, missing string) Field {
	return Field{
		Key:            key,
		Label:          label,
		Kind:           KindChoice,
		Options:        options,
		Required:       true,
		MissingMessage: missing,
		InvalidMessage: "Выберите один из предложенных вариантов",
	}
}

func emailField(key, label string) Field {
	return Field{
		Key: key, Label: label, Kind: KindText, Required: true, Check: IsValidEmail,
		MissingMessage: "Введите email",
		InvalidMessage: "Введите корректный email",
	}
}

func phoneField(key, label string) Field {
	return Field{
		Key: key, Label: label, Kind: KindText, Required: true, Check: IsValidPhone,
		MissingMessage: "Введите телефон",
		InvalidMessage: "Введите корректный телефон",
	}
}

// CompanyDefinition is the three-step company application.
func CompanyDefinition() *Definition {
	return &Definition{
		Branch:    BranchCompany,
		Title:     "Заявка компании",
		Available: true,
		NameKey:   KeyCompanyName,
		EmailKey:  KeyMentorEmail,
		PhoneKey:  KeyMentorPhone,
		Steps: []Step{
			{
				Title: "Компания и ментор",
				Fields: []Field{
					requiredChoice(KeyReadiness, "Готовность", ReadinessOptions, "Выберите готовность компании"),
					requiredText(KeyCompanyName, "Компания", "Введите название компании"),
					{
						Key: KeyINN, Label: "ИНН", Kind: KindText, Required: true, Check: IsValidINN,
						MissingMessage: "Введите ИНН",
						InvalidMessage: "ИНН должен содержать 10 или 12 цифр",
					},
					requiredText(KeyMentorName, "Ментор", "Введите ФИО ментора"),
					emailField(KeyMentorEmail, "Email"),
					phoneField(KeyMentorPhone, "Телефон"),
					requiredText(KeyMentorTelegram, "Telegram", "Введите Telegram"),
				},
			},
			{
				Title: "Стажировка",
				Fields: []Field{
					requiredText(KeyDepartment, "Подразделение", "Введите информацию о подразделении"),
					requiredText(KeyParticipantsCount, "Количество участников", "Введите количество участников"),
					requiredText(KeyResources, "Ресурсы", "Опишите предоставляемые ресурсы"),
					requiredText(KeyShortTermGoals, "Краткосрочные цели", "Опишите краткосрочные цели"),
				},
			},
			{
				Title: "Требования и условия",
				Fields: []Field{
					requiredText(KeySkillRequirements, "Навыки", "Введите требования к навыкам"),
					{Key: KeyOtherRequirements, Label: "Другие требования", Kind: KindText},
					requiredChoice(KeyWorkMode, "Режим работы", WorkModeOptions, "Выберите режим работы"),
					requiredChoice(KeyWorkSchedule, "График", CompanyScheduleOptions, "Выберите график работы"),
					requiredChoice(KeyEmploymentProspects, "Трудоустройство", EmploymentOptions, "Выберите перспективы трудоустройства"),
					requiredChoice(KeyPaymentAbility, "Оплата", PaymentAbilityOptions, "Выберите возможность оплаты"),
					{Key: KeyOtherWishes, Label: "Прочие пожелания", Kind: KindText},
				},
			},
		},
	}
}

// ParticipantDefinition is the three-step participant application.
func ParticipantDefinition() *Definition {
	return &Definition{
		Branch:    BranchParticipant,
		Title:     "Заявка участника",
		Available: true,
		NameKey:   KeyFullName,
		EmailKey:  KeyEmail,
		PhoneKey:  KeyPhone,
		Steps: []Step{
			{
				Title: "Личная информация",
				Fields: []Field{
					requiredText(KeyFullName, "ФИО", "Введите ФИО"),
					{
						Key: KeyAge, Label: "Возраст", Kind: KindNumber, Required: true, Check: IsValidAge,
						MissingMessage: "Введите возраст",
						InvalidMessage: "Возраст должен быть числом от 16 до 100",
					},
					{
						Key: KeyLivesInMoscow, Label: "Проживает в Москве", Kind: KindBool, Required: true,
						MissingMessage: "Укажите, проживаете ли вы в Москве",
						InvalidMessage: "Укажите, проживаете ли вы в Москве",
					},
					emailField(KeyEmail, "Email"),
					phoneField(KeyPhone, "Телефон"),
					requiredText(KeyTelegram, "Telegram", "Введите Telegram"),
					{
						Key: KeyResumeLink, Label: "Резюме", Kind: KindText, Required: true, Check: IsValidURL,
						MissingMessage: "Добавьте ссылку на резюме",
						InvalidMessage: "Введите корректную ссылку на резюме",
					},
				},
			},
			{
				Title: "Образование",
				Fields: []Field{
					requiredText(KeyUniversity, "ВУЗ", "Введите название ВУЗа"),
					requiredText(KeyDirection, "Направление", "Введите направление подготовки"),
					requiredChoice(KeyEducationLevel, "Уровень", EducationOptions, "Выберите уровень образования"),
					requiredChoice(KeyStudyStatus, "Статус", StudyStatusOptions, "Выберите статус"),
					{
						Key:   KeyCourse,
						Label: "Курс",
						Kind:  KindChoice,
						OptionsFunc: func(v Values) []string {
							return CourseOptions(AsString(v[KeyEducationLevel]))
						},
						RequiredWhen: func(v Values) bool {
							return AsString(v[KeyStudyStatus]) == StatusStudent
						},
						DependsOn:      []string{KeyEducationLevel, KeyStudyStatus},
						MissingMessage: "Выберите курс",
						InvalidMessage: "Выберите курс из списка",
					},
				},
			},
			{
				Title: "Предпочтения по работе",
				Fields: []Field{
					requiredChoice(KeyWorkMode, "Режим работы", WorkModeOptions, "Выберите режим работы"),
					requiredChoice(KeyWorkSchedule, "График", ParticipantScheduleOption, "Выберите график работы"),
					{
						Key:   KeyCustomHours,
						Label: "Часов в неделю",
						Kind:  KindText,
						RequiredWhen: func(v Values) bool {
							return AsString(v[KeyWorkSchedule]) == ScheduleOther
						},
						DependsOn:      []string{KeyWorkSchedule},
						MissingMessage: "Укажите желаемое количество часов",
					},
					requiredChoice(KeyPaymentPossibility, "Оплата", PaymentPossibilityOptions, "Выберите вариант оплаты"),
				},
			},
		},
	}
}
