package seeders

type statusSeed struct {
	Name                  string
	Code                  string
	NotifyCustomer        bool
	VisibleToOperator     bool
	VisibleToCourier      bool
	VisibleToWaiter       bool
	VisibleToChef         bool
	VisibleToBartender    bool
	RequiresKitchenNotify bool
	IsCompleted           bool
	IsCancelled           bool
}

var statusesData = []statusSeed{
	{Name: "Новий", Code: "NEW", NotifyCustomer: true, VisibleToOperator: true, VisibleToWaiter: true, VisibleToChef: true, VisibleToBartender: true, RequiresKitchenNotify: true},
	{Name: "В обробці", Code: "PROCESSING", NotifyCustomer: true, VisibleToOperator: true, VisibleToWaiter: true, VisibleToChef: true, VisibleToBartender: true},
	{Name: "Готовий до видачі", Code: "READY", NotifyCustomer: true, VisibleToOperator: true, VisibleToCourier: true, VisibleToWaiter: true},
	{Name: "Доставлений", Code: "DELIVERED", NotifyCustomer: true, VisibleToOperator: true, VisibleToCourier: true, IsCompleted: true},
	{Name: "Скасований", Code: "CANCELLED", NotifyCustomer: true, VisibleToOperator: true, VisibleToWaiter: true, IsCancelled: true},
	{Name: "Оплачено", Code: "PAID", VisibleToOperator: true, VisibleToWaiter: true, IsCompleted: true},
}

type roleSeed struct {
	Name          string
	ManageOrders  bool
	BeAssigned    bool
	ServeTables   bool
	KitchenOrders bool
	BarOrders     bool
}

var rolesData = []roleSeed{
	{Name: "Адміністратор", ManageOrders: true},
	{Name: "Оператор", ManageOrders: true},
	{Name: "Кур'єр", BeAssigned: true},
	{Name: "Офіціант", ServeTables: true},
	{Name: "Кухар", KitchenOrders: true},
	{Name: "Бармен", BarOrders: true},
}

type productSeed struct {
	Name        string
	Description string
	Price       string
	Category    string
	Area        string
}

var productsData = []productSeed{
	{Name: "Борщ", Description: "З пампушками", Price: "145.00", Category: "Перші страви", Area: "kitchen"},
	{Name: "Вареники з картоплею", Description: "Зі сметаною", Price: "120.00", Category: "Другі страви", Area: "kitchen"},
	{Name: "Котлета по-київськи", Description: "З пюре", Price: "210.00", Category: "Другі страви", Area: "kitchen"},
	{Name: "Піца Маргарита", Price: "230.00", Category: "Піца", Area: "kitchen"},
	{Name: "Узвар", Price: "45.00", Category: "Напої", Area: "bar"},
	{Name: "Лимонад", Price: "75.00", Category: "Напої", Area: "bar"},
	{Name: "Капучино", Price: "65.00", Category: "Кава", Area: "bar"},
}
