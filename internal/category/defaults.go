package category

// The built-in rule table. Order matters: rules are evaluated top to bottom
// and downstream reports group by these exact category and parent names.
var defaultRules = []struct {
	pattern  string
	category string
	parent   string
}{
	// Food & Dining
	{`(?i)\b(grocery|supermarket|whole foods|trader joe|kroger|safeway|publix|wegmans|aldi|food lion|stop.?shop)\b`, "Groceries", "Food & Dining"},
	{`(?i)\b(restaurant|cafe|diner|bistro|steakhouse|pizzeria|pizza|mcdonald|burger|kfc|taco|chipotle|subway|domino)\b`, "Restaurants", "Food & Dining"},
	{`(?i)\b(starbucks|coffee|espresso|cappuccino|latte|dunkin|peet.?s|tim.?hortons)\b`, "Coffee Shops", "Food & Dining"},
	{`(?i)\b(fast.?food|drive.?thru|takeout|delivery)\b`, "Fast Food", "Food & Dining"},

	// Transportation
	{`(?i)\b(gas|petrol|fuel|shell|exxon|bp|chevron|mobil|arco|76|valero|sunoco|citgo)\b`, "Gas & Fuel", "Transportation"},
	{`(?i)\b(uber|lyft|taxi|cab|ride.?share|rideshare)\b`, "Rideshare", "Transportation"},
	{`(?i)\b(parking|parking.?meter|garage|valet)\b`, "Parking", "Transportation"},
	{`(?i)\b(metro|subway|bus|transit|public.?transport|train|amtrak)\b`, "Public Transit", "Transportation"},
	{`(?i)\b(car.?wash|auto.?wash|detailing)\b`, "Car Maintenance", "Transportation"},

	// Shopping
	{`(?i)\b(amazon|target|walmart|costco|sam.?club|best.?buy|home.?depot|lowes)\b`, "General Shopping", "Shopping"},
	{`(?i)\b(clothing|apparel|nike|adidas|zara|h.?m|forever.?21|macy.?s|nordstrom)\b`, "Clothing", "Shopping"},
	{`(?i)\b(pharmacy|drugstore|cvs|walgreens|rite.?aid|pharmacy)\b`, "Pharmacy", "Shopping"},

	// Bills & Utilities
	{`(?i)\b(electric|power|energy|utility|electricity)\b`, "Electric", "Bills & Utilities"},
	{`(?i)\b(water|sewer|waterworks)\b`, "Water", "Bills & Utilities"},
	{`(?i)\b(gas.?bill|natural.?gas)\b`, "Gas Utility", "Bills & Utilities"},
	{`(?i)\b(internet|isp|comcast|verizon|att|xfinity|spectrum)\b`, "Internet", "Bills & Utilities"},
	{`(?i)\b(phone|mobile|cellular|verizon|att|t.?mobile|sprint)\b`, "Phone", "Bills & Utilities"},
	{`(?i)\b(cable|tv|television|directv|dish)\b`, "Cable/TV", "Bills & Utilities"},

	// Entertainment
	{`(?i)\b(netflix|hulu|disney.?plus|prime|spotify|apple.?music|youtube.?premium)\b`, "Streaming Services", "Entertainment"},
	{`(?i)\b(movie|cinema|theater|amc|regal|fandango)\b`, "Movies", "Entertainment"},
	{`(?i)\b(concert|ticketmaster|stubhub|event)\b`, "Events", "Entertainment"},
	{`(?i)\b(game|gaming|steam|playstation|xbox|nintendo)\b`, "Gaming", "Entertainment"},

	// Health & Fitness
	{`(?i)\b(doctor|physician|medical|clinic|hospital|urgent.?care)\b`, "Medical", "Health & Fitness"},
	{`(?i)\b(dentist|dental|orthodontist)\b`, "Dental", "Health & Fitness"},
	{`(?i)\b(gym|fitness|yoga|pilates|personal.?trainer)\b`, "Fitness", "Health & Fitness"},
	{`(?i)\b(pharmacy|prescription|medication)\b`, "Pharmacy", "Health & Fitness"},

	// Income
	{`(?i)\b(salary|payroll|paycheck|wages|income|direct.?deposit)\b`, "Salary", "Income"},
	{`(?i)\b(bonus|commission|freelance|contract)\b`, "Other Income", "Income"},
	{`(?i)\b(refund|reimbursement|rebate)\b`, "Refunds", "Income"},

	// Transfers
	{`(?i)\b(transfer|savings|investment|401k|ira)\b`, "Transfers", "Transfers"},

	// Subscriptions
	{`(?i)\b(subscription|recurring|monthly.?fee|annual.?fee)\b`, "Subscriptions", "Subscriptions"},

	// Education
	{`(?i)\b(tuition|school|university|college|education|student.?loan)\b`, "Education", "Education"},

	// Insurance
	{`(?i)\b(insurance|premium|geico|state.?farm|allstate|progressive)\b`, "Insurance", "Insurance"},

	// Banking
	{`(?i)\b(fee|atm|overdraft|service.?charge|bank.?fee)\b`, "Banking Fees", "Banking"},
}
