package dto

// DashboardDTO resumen del panel: conteos y muebles agotados.
type DashboardDTO struct {
	TotalProducts int               `json:"total_productos"`
	TotalOrders   int               `json:"total_pedidos"`
	TotalUsers    int               `json:"total_usuarios"`
	OutOfStock    []ProductResponse `json:"sin_stock"`
}
