package api

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"

	errx "github.com/shopeasy/storefront/internal/core/error"
	"github.com/shopeasy/storefront/internal/storefront/account"
	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/model"
	"github.com/shopeasy/storefront/internal/storefront/search"
	"github.com/shopeasy/storefront/internal/storefront/tools"
)

type addItemRequest struct {
	ProductID int    `json:"product_id"`
	Page      string `json:"page"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// changeResult reports whether a mutation touched the collection. Unknown
// products and stale positions are silent no-ops.
type changeResult struct {
	Changed bool         `json:"changed"`
	Name    string       `json:"name,omitempty"`
	Entry   *model.Entry `json:"entry,omitempty"`
	Count   int          `json:"count"`
}

func pageOrDefault(p string) string {
	if p == "" {
		return catalog.SearchPage
	}
	return p
}

func indexParam(c *fiber.Ctx) (int, error) {
	idx, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, errx.Validation("index must be an integer")
	}
	return idx, nil
}

func (s *Server) health(c *fiber.Ctx) error {
	return ok(c, "ok", nil)
}

func (s *Server) listProducts(c *fiber.Ctx) error {
	page := pageOrDefault(c.Query("page"))
	products := s.state(c).FilterProducts(page, "")
	return ok(c, fmt.Sprintf("Showing %d products", len(products)), products)
}

func (s *Server) search(c *fiber.Ctx) error {
	q := search.Query{Term: c.Query("q"), Sort: c.Query("sort")}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return errx.Validation("max_price must be a non-negative number")
		}
		q.MaxPrice = v
	}
	res := s.state(c).Search(pageOrDefault(c.Query("page")), q)
	return ok(c, fmt.Sprintf("Showing %d results for %q", res.Count, res.Term), res)
}

func (s *Server) suggest(c *fiber.Ctx) error {
	return ok(c, "", s.state(c).Suggest(c.Query("q")))
}

func (s *Server) getCart(c *fiber.Ctx) error {
	st := s.state(c)
	items, err := st.Cart.Items(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "", fiber.Map{
		"items":   items,
		"count":   len(items),
		"summary": st.ComputeSummary(items),
	})
}

func (s *Server) cartCount(c *fiber.Ctx) error {
	n, err := s.state(c).Cart.Count(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "", fiber.Map{"count": n})
}

func (s *Server) addToCart(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Validation("invalid request")
	}
	st := s.state(c)
	entry, err := st.AddToCart(c.UserContext(), pageOrDefault(req.Page), req.ProductID)
	if err != nil {
		return err
	}
	n, err := st.Cart.Count(c.UserContext())
	if err != nil {
		return err
	}
	if entry == nil {
		return ok(c, "", changeResult{Count: n})
	}
	return ok(c, entry.Name+" added to cart!", changeResult{Changed: true, Name: entry.Name, Entry: entry, Count: n})
}

func (s *Server) removeFromCart(c *fiber.Ctx) error {
	idx, err := indexParam(c)
	if err != nil {
		return err
	}
	st := s.state(c)
	name, changed, err := st.RemoveFromCart(c.UserContext(), idx)
	if err != nil {
		return err
	}
	return s.cartChange(c, name, changed, " removed from cart!")
}

func (s *Server) removeCartEntry(c *fiber.Ctx) error {
	name, changed, err := s.state(c).Cart.RemoveEntry(c.UserContext(), c.Params("entryID"))
	if err != nil {
		return err
	}
	return s.cartChange(c, name, changed, " removed from cart!")
}

func (s *Server) cartChange(c *fiber.Ctx, name string, changed bool, suffix string) error {
	n, err := s.state(c).Cart.Count(c.UserContext())
	if err != nil {
		return err
	}
	msg := ""
	if changed {
		msg = name + suffix
	}
	return ok(c, msg, changeResult{Changed: changed, Name: name, Count: n})
}

func (s *Server) checkout(c *fiber.Ctx) error {
	summary, err := s.state(c).Cart.Checkout(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "Proceeding to checkout...", summary)
}

func (s *Server) getWishlist(c *fiber.Ctx) error {
	items, err := s.state(c).Wishlist.Items(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "", fiber.Map{"items": items, "count": len(items)})
}

func (s *Server) addToWishlist(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Validation("invalid request")
	}
	entry, err := s.state(c).AddToWishlist(c.UserContext(), pageOrDefault(req.Page), req.ProductID)
	if err != nil {
		return err
	}
	if entry == nil {
		return ok(c, "", changeResult{})
	}
	return ok(c, entry.Name+" added to wishlist!", changeResult{Changed: true, Name: entry.Name, Entry: entry})
}

func (s *Server) removeFromWishlist(c *fiber.Ctx) error {
	idx, err := indexParam(c)
	if err != nil {
		return err
	}
	name, changed, err := s.state(c).RemoveFromWishlist(c.UserContext(), idx)
	if err != nil {
		return err
	}
	return wishlistChange(c, name, changed, " removed from wishlist!")
}

func (s *Server) removeWishlistEntry(c *fiber.Ctx) error {
	name, changed, err := s.state(c).Wishlist.RemoveEntry(c.UserContext(), c.Params("entryID"))
	if err != nil {
		return err
	}
	return wishlistChange(c, name, changed, " removed from wishlist!")
}

func (s *Server) moveToCart(c *fiber.Ctx) error {
	idx, err := indexParam(c)
	if err != nil {
		return err
	}
	name, changed, err := s.state(c).Wishlist.MoveToCart(c.UserContext(), idx)
	if err != nil {
		return err
	}
	return s.cartChange(c, name, changed, " added to cart!")
}

func wishlistChange(c *fiber.Ctx, name string, changed bool, suffix string) error {
	msg := ""
	if changed {
		msg = name + suffix
	}
	return ok(c, msg, changeResult{Changed: changed, Name: name})
}

func (s *Server) register(c *fiber.Ctx) error {
	var in model.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return errx.Validation("invalid request format")
	}
	user, err := s.state(c).Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(Response{
		Status:  fiber.StatusCreated,
		Message: "Account created successfully!",
		Result:  fiber.Map{"id": user.ID, "name": user.Name, "email": user.Email},
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Validation("invalid request format")
	}
	sess, err := s.state(c).Account.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return ok(c, "Logged in", sess)
}

func (s *Server) logout(c *fiber.Ctx) error {
	if err := s.state(c).Account.Logout(c.UserContext()); err != nil {
		return err
	}
	return ok(c, "You have been logged out successfully", nil)
}

func (s *Server) currentAccount(c *fiber.Ctx) error {
	sess, loggedIn, err := s.state(c).Account.Current(c.UserContext())
	if err != nil {
		return err
	}
	if !loggedIn {
		return ok(c, "", fiber.Map{"loggedIn": false})
	}
	return ok(c, "", fiber.Map{
		"loggedIn":    true,
		"email":       sess.Email,
		"displayName": account.DisplayName(sess),
		"loginTime":   sess.LoginTime,
	})
}

func (s *Server) listTools(c *fiber.Ctx) error {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return ok(c, "", names)
}

func (s *Server) invokeTool(c *fiber.Ctx) error {
	t, found := s.tools[c.Params("name")]
	if !found {
		return errx.NotFound("unknown tool")
	}
	args := string(c.Body())
	if args == "" {
		args = "{}"
	}
	out, err := tools.Invoke(c.UserContext(), t, args, s.callbacks)
	if err != nil {
		return errx.Validation(err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(out)
}
