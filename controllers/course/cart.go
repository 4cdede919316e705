package controllers

import (
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

func (ec *EnrollmentController) AddToCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(string)

	item, err := ec.svc.AddToCart(c.UserContext(), userID, courseID)
	if err != nil {
		return fail(c, err, "Failed to add course to cart!")
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course added to cart!", item)
}

func (ec *EnrollmentController) RemoveFromCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(string)

	if err := ec.svc.RemoveFromCart(c.UserContext(), userID, courseID); err != nil {
		return fail(c, err, "Failed to remove course from cart!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from cart!", nil)
}

func (ec *EnrollmentController) ListCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	cart, err := ec.svc.ListCart(c.UserContext(), userID)
	if err != nil {
		return fail(c, err, "Failed to fetch cart!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched successfully!", cart)
}

func (ec *EnrollmentController) Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	result, err := ec.svc.Checkout(c.UserContext(), userID)
	if err != nil {
		return fail(c, err, "Checkout failed!")
	}
	message := "Checkout completed successfully!"
	if len(result.Failed) > 0 {
		message = "Checkout partially completed. Some courses are still in your cart."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, result)
}

func (ec *EnrollmentController) ListOrders(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	orders, err := ec.svc.ListOrders(c.UserContext(), userID)
	if err != nil {
		return fail(c, err, "Failed to fetch orders!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully!", orders)
}
