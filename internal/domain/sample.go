package domain

// SampleProducts is the demo catalog used by the sample-load endpoint.
var SampleProducts = []Product{
	{
		ProductID:   "prod-001",
		Name:        "Wireless Bluetooth Headphones",
		Description: "Premium noise-cancelling wireless headphones with 30-hour battery life. Perfect for music lovers and professionals.",
		Category:    "Electronics",
		Price:       199.99,
		Brand:       "AudioTech",
		Tags:        []string{"wireless", "bluetooth", "noise-cancelling", "premium"},
	},
	{
		ProductID:   "prod-002",
		Name:        "Ergonomic Office Chair",
		Description: "Comfortable ergonomic office chair with lumbar support and adjustable height. Ideal for long work sessions.",
		Category:    "Furniture",
		Price:       349.99,
		Brand:       "ErgoDesk",
		Tags:        []string{"ergonomic", "office", "comfortable", "adjustable"},
	},
	{
		ProductID:   "prod-003",
		Name:        "Smart Fitness Watch",
		Description: "Advanced fitness tracking watch with heart rate monitor, GPS, and waterproof design for active lifestyles.",
		Category:    "Wearables",
		Price:       299.99,
		Brand:       "FitTech",
		Tags:        []string{"fitness", "smartwatch", "waterproof", "gps"},
	},
}
