package gateway

import (
	"strconv"

	"github.com/talenthub/console/server/model"
)

// Login exchanges admin credentials for a bearer token. Unauthenticated.
func (c *Client) Login(email, password string) (model.LoginResponse, error) {
	return requestJSON[model.LoginResponse](c, "POST", "admin_login", "", nil, model.LoginRequest{
		Email:    email,
		Password: password,
	})
}

func (c *Client) Logout(token string) error {
	_, err := c.do("POST", "admin/logout", token, nil, nil)
	return err
}

func (c *Client) ChangePassword(token string, req model.ChangePasswordRequest) error {
	_, err := c.do("POST", "admin_change_password", token, nil, req)
	return err
}

func (c *Client) Users(token string, page int) ([]model.User, error) {
	return requestJSON[[]model.User](c, "GET", "users", token, pageQuery(page), nil)
}

func (c *Client) SearchUsers(token, name string) ([]model.User, error) {
	return requestJSON[[]model.User](c, "GET", "admin_search_user", token, map[string]string{"name": name}, nil)
}

func (c *Client) BanUser(token, googleID string, status int) error {
	_, err := c.do("PUT", "ban_user/"+googleID, token, nil, model.StatusChangeRequest{
		Status: strconv.Itoa(status),
	})
	return err
}

func (c *Client) UpdateUserRole(token, googleID string, roleID int) error {
	_, err := c.do("POST", "update_user_role/"+googleID, token, nil, model.RoleChangeRequest{RoleID: roleID})
	return err
}

func (c *Client) CreateEndorserAccount(token string, req model.CreateEndorserRequest) (model.CreateEndorserResponse, error) {
	return requestJSON[model.CreateEndorserResponse](c, "POST", "admin/create_endorser_account", token, nil, req)
}

func (c *Client) Admins(token string) ([]model.Admin, error) {
	return requestJSON[[]model.Admin](c, "GET", "view_all_admin", token, nil, nil)
}

func (c *Client) CreateAdminAccount(token string, req model.CreateAdminRequest) (model.CreateAdminResponse, error) {
	return requestJSON[model.CreateAdminResponse](c, "POST", "admin/create_admin_account", token, nil, req)
}

func (c *Client) RemoveAdmin(token string, id int64) error {
	_, err := c.do("DELETE", "remove_admin/"+strconv.FormatInt(id, 10), token, nil, nil)
	return err
}

// Majors is the one authenticated-optional read: the upstream serves it
// without a token.
func (c *Client) Majors() ([]model.Major, error) {
	return requestJSON[[]model.Major](c, "GET", "view_all_majors", "", nil, nil)
}

func (c *Client) CreateMajor(token, name string) (model.Major, error) {
	return requestJSON[model.Major](c, "POST", "create_major", token, nil, model.MajorRequest{Name: name})
}

func (c *Client) UpdateMajor(token string, id int64, name string) (model.Major, error) {
	return requestJSON[model.Major](c, "PUT", "update_major/"+strconv.FormatInt(id, 10), token, nil, model.MajorRequest{Name: name})
}

func (c *Client) DeleteMajor(token string, id int64) error {
	_, err := c.do("DELETE", "delete_major/"+strconv.FormatInt(id, 10), token, nil, nil)
	return err
}

func (c *Client) Portfolios(token string, page int) ([]model.Portfolio, error) {
	return requestJSON[[]model.Portfolio](c, "GET", "admin_view_all_portfolio", token, pageQuery(page), nil)
}

func (c *Client) Projects(token string, page int) ([]model.Project, error) {
	return requestJSON[[]model.Project](c, "GET", "admin_view_all_project", token, pageQuery(page), nil)
}

func (c *Client) SearchPortfolios(token, name string) ([]model.Portfolio, error) {
	return requestJSON[[]model.Portfolio](c, "GET", "admin_search_portfolio", token, map[string]string{"name": name}, nil)
}

func (c *Client) SearchProjects(token, name string) ([]model.Project, error) {
	return requestJSON[[]model.Project](c, "GET", "admin_search_project", token, map[string]string{"name": name}, nil)
}

func (c *Client) PortfolioDetail(token string, userID int64) (model.Portfolio, error) {
	return requestJSON[model.Portfolio](c, "GET", "admin_view_portfolio_detail/"+strconv.FormatInt(userID, 10), token, nil, nil)
}

func (c *Client) ProjectDetail(token string, projectID int64) (model.Project, error) {
	return requestJSON[model.Project](c, "GET", "admin_view_project_detail/"+strconv.FormatInt(projectID, 10), token, nil, nil)
}

func (c *Client) EmploymentRate(token string) (model.EmploymentRate, error) {
	return requestJSON[model.EmploymentRate](c, "GET", "admin_view_employment_rate", token, nil, nil)
}

func (c *Client) TopJobTitles(token string) ([]model.JobTitleCount, error) {
	return requestJSON[[]model.JobTitleCount](c, "GET", "admin_view_top_10_job_title", token, nil, nil)
}

func (c *Client) TopCompanies(token string) ([]model.CompanyCount, error) {
	return requestJSON[[]model.CompanyCount](c, "GET", "admin_view_top_10_companies", token, nil, nil)
}

func (c *Client) EndorserRequests(token string) (model.EndorserApplicationList, error) {
	return requestJSON[model.EndorserApplicationList](c, "GET", "admin_view_all_endorser_request", token, nil, nil)
}

func (c *Client) EndorserRequestDetail(token string, id int64) (model.EndorserApplication, error) {
	return requestJSON[model.EndorserApplication](c, "GET", "admin_view_endorser_request_detail/"+strconv.FormatInt(id, 10), token, nil, nil)
}

func (c *Client) UpdateEndorserRequest(token string, id int64, status int) error {
	_, err := c.do("PUT", "admin_update_endorser_request/"+strconv.FormatInt(id, 10), token, nil, model.StatusChangeRequest{
		Status: strconv.Itoa(status),
	})
	return err
}

func pageQuery(page int) map[string]string {
	return map[string]string{"page": strconv.Itoa(page)}
}
