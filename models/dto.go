package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=customer admin"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// AddToCartRequest mirrors the storefront add-to-cart form: a bounded
// quantity plus a flag choosing between increment and overwrite.
type AddToCartRequest struct {
	Quantity int  `json:"quantity" form:"quantity" binding:"required,min=1,max=20"`
	Replace  bool `json:"replace" form:"replace"`
}

type CreateOrderRequest struct {
	FirstName  string `json:"first_name" form:"first_name" binding:"required"`
	LastName   string `json:"last_name" form:"last_name" binding:"required"`
	Email      string `json:"email" form:"email" binding:"required,email"`
	Address    string `json:"address" form:"address" binding:"required"`
	PostalCode string `json:"postal_code" form:"postal_code" binding:"required"`
	City       string `json:"city" form:"city" binding:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" form:"name" binding:"required,min=2"`
}

type CreateProductRequest struct {
	Name        string `json:"name" form:"name" binding:"required,min=3"`
	CategoryID  int    `json:"category_id" form:"category_id" binding:"required"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price" binding:"required"`
	Available   *bool  `json:"available" form:"available"`
}

type UpdateProductRequest struct {
	Name        string `json:"name" form:"name"`
	CategoryID  int    `json:"category_id" form:"category_id"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price"`
	Available   *bool  `json:"available" form:"available"`
}
