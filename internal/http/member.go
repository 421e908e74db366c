package http

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ztacole/BacaDong/internal/database/members"
)

const (
	// HeaderMemberID names the member a request acts for.
	HeaderMemberID = "X-Member-ID"

	contextKeyMemberID = "member_id"
)

// MemberMiddleware resolves the acting member from the X-Member-ID header,
// falling back to defaultID. Unknown or malformed IDs are rejected with 400.
// A nil getter skips the existence check.
func MemberMiddleware(getter MemberGetter, defaultID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := defaultID
		if raw := c.GetHeader(HeaderMemberID); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || parsed == 0 {
				respondBadRequest(c, "invalid "+HeaderMemberID+" header")
				c.Abort()
				return
			}
			id = uint(parsed)
		}

		if getter != nil {
			if _, err := getter.GetByID(c.Request.Context(), id); err != nil {
				if errors.Is(err, members.ErrMemberNotFound) {
					respondBadRequest(c, "unknown member")
				} else {
					respondInternalError(c, err, "resolve member")
				}
				c.Abort()
				return
			}
		}

		c.Set(contextKeyMemberID, id)
		c.Next()
	}
}

// memberID returns the member resolved by MemberMiddleware.
func memberID(c *gin.Context) uint {
	return c.GetUint(contextKeyMemberID)
}
